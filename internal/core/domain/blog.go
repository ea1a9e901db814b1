package domain

import (
	"fmt"
	"strings"
	"time"
)

// BlogStatus is the publication state of a blog post.
type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

// ParseBlogStatus validates a blog status; an empty value means draft.
func ParseBlogStatus(raw string) (BlogStatus, error) {
	switch s := BlogStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return BlogDraft, nil
	case BlogDraft, BlogPublished:
		return s, nil
	default:
		return "", fmt.Errorf("%w: status must be one of draft, published", ErrValidation)
	}
}

// Blog is an admin-curated article.
type Blog struct {
	ID        string     `json:"_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Thumbnail string     `json:"thumbnail"`
	Status    BlogStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}
