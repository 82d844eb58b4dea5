package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mriera/bloglist-backend/internal/apperr"
	"github.com/mriera/bloglist-backend/internal/models"
	"github.com/mriera/bloglist-backend/internal/repository"
)

type blogsRepo struct{ coll *mongo.Collection }

func NewBlogs(database *mongo.Database) repository.Blogs {
	return &blogsRepo{coll: database.Collection("blogs")}
}

func (r *blogsRepo) Create(ctx context.Context, b models.Blog) (models.Blog, error) {
	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return models.Blog{}, err
	}
	return b, nil
}

func (r *blogsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.Blog, error) {
	var b models.Blog
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Blog{}, apperr.ErrNotFound
	}
	return b, err
}

func (r *blogsRepo) List(ctx context.Context) ([]models.Blog, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Blog{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *blogsRepo) UpdateLikes(ctx context.Context, id primitive.ObjectID, likes int) (models.Blog, error) {
	var b models.Blog
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"likes": likes}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Blog{}, apperr.ErrNotFound
	}
	return b, err
}

func (r *blogsRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *blogsRepo) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}
