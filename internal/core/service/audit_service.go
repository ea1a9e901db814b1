package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifedrop/blood-donation-api/internal/api/metrics"
	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

type auditService struct {
	events ports.EventRepository
	log    zerolog.Logger
}

// NewAuditService returns an AuditService that persists lifecycle events.
func NewAuditService(events ports.EventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{events: events, log: log}
}

// Process writes one lifecycle event to the audit trail.
func (s *auditService) Process(ctx context.Context, event domain.LifecycleEvent) error {
	start := time.Now()
	defer func() { metrics.AuditProcessingDuration.Observe(time.Since(start).Seconds()) }()

	if err := s.events.InsertEvent(ctx, &event); err != nil {
		metrics.AuditErrorsTotal.Inc()
		return fmt.Errorf("audit event: %w", err)
	}

	s.log.Debug().
		Str("request_id", event.RequestID).
		Str("operation", string(event.Operation)).
		Str("to", string(event.To)).
		Msg("audit event stored")
	return nil
}
