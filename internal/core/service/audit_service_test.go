package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

type stubEventRepo struct {
	inserted []domain.LifecycleEvent
	err      error
}

func (r *stubEventRepo) InsertEvent(_ context.Context, event *domain.LifecycleEvent) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, *event)
	return nil
}

func TestAuditService_Process(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewAuditService(repo, discardLogger)

	event := domain.LifecycleEvent{
		RequestID:  "0001",
		Operation:  domain.OpConfirm,
		From:       domain.StatusPending,
		To:         domain.StatusInProgress,
		ActorEmail: "d@x.com",
		At:         time.Now(),
	}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].RequestID != "0001" {
		t.Fatalf("unexpected inserts: %+v", repo.inserted)
	}
}

func TestAuditService_ProcessError(t *testing.T) {
	storeErr := errors.New("mongo: write concern")
	svc := NewAuditService(&stubEventRepo{err: storeErr}, discardLogger)

	err := svc.Process(context.Background(), domain.LifecycleEvent{RequestID: "0001"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
