package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

const collectionBlogs = "blogs"

type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{col: db.Collection(collectionBlogs)}
}

type blogDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Thumbnail string             `bson:"thumbnail"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, blogDoc{
		Title:     blog.Title,
		Content:   blog.Content,
		Thumbnail: blog.Thumbnail,
		Status:    string(blog.Status),
		CreatedAt: blog.CreatedAt.UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("insert blog: %w", err)
	}
	return insertedHex(res.InsertedID), nil
}

func (r *BlogRepository) List(ctx context.Context, status domain.BlogStatus) ([]*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	var docs []blogDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}

	out := make([]*domain.Blog, len(docs))
	for i, d := range docs {
		out[i] = &domain.Blog{
			ID:        d.ID.Hex(),
			Title:     d.Title,
			Content:   d.Content,
			Thumbnail: d.Thumbnail,
			Status:    domain.BlogStatus(d.Status),
			CreatedAt: d.CreatedAt,
		}
	}
	return out, nil
}

func (r *BlogRepository) SetStatus(ctx context.Context, id string, status domain.BlogStatus) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}
