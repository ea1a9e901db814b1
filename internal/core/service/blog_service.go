package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

type BlogService struct {
	repo   ports.BlogRepository
	logger zerolog.Logger
}

func NewBlogService(repo ports.BlogRepository, logger zerolog.Logger) *BlogService {
	return &BlogService{repo: repo, logger: logger}
}

func (s *BlogService) Create(ctx context.Context, input ports.CreateBlogInput) (*domain.Blog, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" || strings.TrimSpace(input.Thumbnail) == "" {
		return nil, fmt.Errorf("%w: title, content, thumbnail required", domain.ErrValidation)
	}
	status, err := domain.ParseBlogStatus(input.Status)
	if err != nil {
		return nil, err
	}

	blog := &domain.Blog{
		Title:     input.Title,
		Content:   input.Content,
		Thumbnail: input.Thumbnail,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.repo.Create(ctx, blog)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create blog")
		return nil, fmt.Errorf("create blog: %w", err)
	}
	blog.ID = id
	return blog, nil
}

func (s *BlogService) List(ctx context.Context, status string) ([]*domain.Blog, error) {
	var st domain.BlogStatus
	if strings.TrimSpace(status) != "" {
		parsed, err := domain.ParseBlogStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}
	return s.repo.List(ctx, st)
}

func (s *BlogService) Publish(ctx context.Context, id string) error {
	return s.repo.SetStatus(ctx, id, domain.BlogPublished)
}

func (s *BlogService) Unpublish(ctx context.Context, id string) error {
	return s.repo.SetStatus(ctx, id, domain.BlogDraft)
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
