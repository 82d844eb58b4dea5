package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username     string               `bson:"username" json:"username"`
	Name         string               `bson:"name" json:"name"`
	PasswordHash string               `bson:"password_hash" json:"-"`
	Blogs        []primitive.ObjectID `bson:"blogs" json:"blogs"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
}
