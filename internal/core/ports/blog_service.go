package ports

import (
	"context"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

// CreateBlogInput carries a new blog post.
type CreateBlogInput struct {
	Title     string
	Content   string
	Thumbnail string
	Status    string
}

// BlogService defines blog use cases.
type BlogService interface {
	Create(ctx context.Context, input CreateBlogInput) (*domain.Blog, error)
	List(ctx context.Context, status string) ([]*domain.Blog, error)
	Publish(ctx context.Context, id string) error
	Unpublish(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
