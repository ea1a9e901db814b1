package ports

import (
	"context"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

// AuditRecorder accepts lifecycle events for asynchronous persistence.
// Enqueue must not block the caller on storage.
type AuditRecorder interface {
	Enqueue(event domain.LifecycleEvent)
}

// AuditService writes a single lifecycle event to the audit trail.
type AuditService interface {
	Process(ctx context.Context, event domain.LifecycleEvent) error
}
