// Package memory implements the repository interfaces on plain maps.
// The test suite runs the services and router against it; it mirrors the
// Mongo stores' behavior, including the unique-username constraint.
package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mriera/bloglist-backend/internal/apperr"
	"github.com/mriera/bloglist-backend/internal/models"
)

type UsersRepo struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewUsers() *UsersRepo {
	return &UsersRepo{users: map[primitive.ObjectID]models.User{}}
}

func (r *UsersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return models.User{}, apperr.Validation("expected username to be unique")
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	if u.Blogs == nil {
		u.Blogs = []primitive.ObjectID{}
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, apperr.ErrNotFound
	}
	return u, nil
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, apperr.ErrNotFound
}

func (r *UsersRepo) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *UsersRepo) AppendBlog(ctx context.Context, userID, blogID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperr.ErrNotFound
	}
	for _, id := range u.Blogs {
		if id == blogID {
			return nil
		}
	}
	u.Blogs = append(u.Blogs, blogID)
	r.users[userID] = u
	return nil
}

func (r *UsersRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = map[primitive.ObjectID]models.User{}
	return nil
}

type BlogsRepo struct {
	mu    sync.RWMutex
	blogs map[primitive.ObjectID]models.Blog
}

func NewBlogs() *BlogsRepo {
	return &BlogsRepo{blogs: map[primitive.ObjectID]models.Blog{}}
}

func (r *BlogsRepo) Create(ctx context.Context, b models.Blog) (models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now().UTC()
	r.blogs[b.ID] = b
	return b, nil
}

func (r *BlogsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.blogs[id]
	if !ok {
		return models.Blog{}, apperr.ErrNotFound
	}
	return b, nil
}

func (r *BlogsRepo) List(ctx context.Context) ([]models.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Blog, 0, len(r.blogs))
	for _, b := range r.blogs {
		out = append(out, b)
	}
	return out, nil
}

func (r *BlogsRepo) UpdateLikes(ctx context.Context, id primitive.ObjectID, likes int) (models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blogs[id]
	if !ok {
		return models.Blog{}, apperr.ErrNotFound
	}
	b.Likes = likes
	r.blogs[id] = b
	return b, nil
}

func (r *BlogsRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blogs[id]; !ok {
		return false, nil
	}
	delete(r.blogs, id)
	return true, nil
}

func (r *BlogsRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blogs = map[primitive.ObjectID]models.Blog{}
	return nil
}
