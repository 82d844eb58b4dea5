package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"

	repo "github.com/mriera/bloglist-backend/internal/repository"
)

type Repositories struct {
	Users repo.Users
	Blogs repo.Blogs
}

func NewRepositories(database *mongo.Database) Repositories {
	return Repositories{
		Users: NewUsers(database),
		Blogs: NewBlogs(database),
	}
}
