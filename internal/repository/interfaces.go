package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mriera/bloglist-backend/internal/models"
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)

	// AppendBlog adds blogID to the user's owned list. Idempotent:
	// appending an id that is already present is a no-op.
	AppendBlog(ctx context.Context, userID, blogID primitive.ObjectID) error

	DeleteAll(ctx context.Context) error
}

type Blogs interface {
	Create(ctx context.Context, b models.Blog) (models.Blog, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Blog, error)
	List(ctx context.Context) ([]models.Blog, error)
	UpdateLikes(ctx context.Context, id primitive.ObjectID, likes int) (models.Blog, error)

	// Delete reports whether a document was actually removed; deleting
	// an absent id is not an error.
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)

	DeleteAll(ctx context.Context) error
}
