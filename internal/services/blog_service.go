package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mriera/bloglist-backend/internal/apperr"
	"github.com/mriera/bloglist-backend/internal/metrics"
	"github.com/mriera/bloglist-backend/internal/models"
	repo "github.com/mriera/bloglist-backend/internal/repository"
)

type BlogService struct {
	blogs repo.Blogs
	users repo.Users
}

func NewBlogService(blogs repo.Blogs, users repo.Users) *BlogService {
	return &BlogService{blogs: blogs, users: users}
}

type CreateBlogInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// Create persists a blog owned by owner and appends its id to the
// owner's list. The two writes are separate single-document operations;
// the append is idempotent so a retry cannot duplicate the reference.
func (s *BlogService) Create(ctx context.Context, owner models.User, in CreateBlogInput) (models.Blog, error) {
	if in.Title == "" && in.URL == "" {
		return models.Blog{}, apperr.Validation("title or url is required")
	}
	b, err := s.blogs.Create(ctx, models.Blog{
		Title:  in.Title,
		Author: in.Author,
		URL:    in.URL,
		Likes:  in.Likes,
		UserID: owner.ID,
	})
	if err != nil {
		return models.Blog{}, err
	}
	if err := s.users.AppendBlog(ctx, owner.ID, b.ID); err != nil {
		return models.Blog{}, err
	}
	metrics.BlogsCreated.Inc()
	return b, nil
}

// List returns all blogs with the owner denormalized to username/name.
// The join happens at read time; nothing is stored redundantly.
func (s *BlogService) List(ctx context.Context) ([]models.Blog, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}
	owners := map[primitive.ObjectID]*models.Owner{}
	for i, b := range blogs {
		o, ok := owners[b.UserID]
		if !ok {
			u, err := s.users.GetByID(ctx, b.UserID)
			switch {
			case err == nil:
				o = &models.Owner{Username: u.Username, Name: u.Name}
			case errors.Is(err, apperr.ErrNotFound):
				// Dangling owner reference: tolerated, Owner stays nil.
			default:
				return nil, err
			}
			owners[b.UserID] = o
		}
		blogs[i].Owner = o
	}
	return blogs, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (models.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Blog{}, err
	}
	return s.blogs.GetByID(ctx, oid)
}

func (s *BlogService) UpdateLikes(ctx context.Context, id string, likes int) (models.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Blog{}, err
	}
	return s.blogs.UpdateLikes(ctx, oid, likes)
}

// Delete is an idempotent no-op for a well-formed id that is already
// gone; only a malformed id is an error.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	_, err = s.blogs.Delete(ctx, oid)
	return err
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.ErrMalformedID
	}
	return oid, nil
}
