package ports

import (
	"context"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

// EventRepository persists the donation request audit trail.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.LifecycleEvent) error
}
