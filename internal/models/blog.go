package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Blog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Author    string             `bson:"author" json:"author"`
	URL       string             `bson:"url" json:"url"`
	Likes     int                `bson:"likes" json:"likes"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	// Owner is filled at read time from the users collection; it is
	// never persisted on the blog document.
	Owner *Owner `bson:"-" json:"owner,omitempty"`
}

// Owner is the denormalized view of the owning user in listings.
type Owner struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}
