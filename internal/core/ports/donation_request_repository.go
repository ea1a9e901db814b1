package ports

import (
	"context"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

// RequestFilter narrows a donation request listing. Empty fields are ignored.
type RequestFilter struct {
	Status         domain.RequestStatus
	RequesterEmail string
	DonorEmail     string
}

// DonationRequestRepository defines persistence operations for donation requests.
type DonationRequestRepository interface {
	// Create inserts a new request and returns its store-generated id.
	Create(ctx context.Context, r *domain.DonationRequest) (string, error)
	FindByID(ctx context.Context, id string) (*domain.DonationRequest, error)
	// List returns matching requests, newest first.
	List(ctx context.Context, filter RequestFilter) ([]*domain.DonationRequest, error)
	// ApplyUpdate writes upd in one conditional operation that only matches
	// while the stored document satisfies guard, and returns the updated
	// document. It returns domain.ErrRequestNotFound when no document has the
	// id and domain.ErrConflict when the document exists but the guard fails.
	ApplyUpdate(ctx context.Context, id string, guard domain.Guard, upd domain.RequestUpdate) (*domain.DonationRequest, error)
	Delete(ctx context.Context, id string) error
}
