package ports

import (
	"context"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

// BlogRepository defines persistence operations for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) (string, error)
	// List returns posts newest first, optionally restricted to one status.
	List(ctx context.Context, status domain.BlogStatus) ([]*domain.Blog, error)
	SetStatus(ctx context.Context, id string, status domain.BlogStatus) error
	Delete(ctx context.Context, id string) error
}
