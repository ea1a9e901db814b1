package ports

import (
	"context"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

// CreateRequestInput carries the payload of a new donation request.
type CreateRequestInput struct {
	RequesterEmail string
	Details        domain.RequestDetails
	IdempotencyKey string
}

// CreateRequestResult is returned after a request is created.
type CreateRequestResult struct {
	ID string
	// AlreadyExisted is true when the Idempotency-Key matched an earlier request.
	AlreadyExisted bool
}

// ListRequestsInput carries the query filters of the list endpoint.
type ListRequestsInput struct {
	Status         string
	RequesterEmail string
	DonorEmail     string
}

// PatchRequestInput is a partial update. Immutable fields have no slot here.
type PatchRequestInput struct {
	Status     *string
	DonorEmail *string
	DonorName  *string
	Details    domain.DetailsPatch
}

// DonationService defines the donation request lifecycle use cases. Every
// mutating method takes the actor admitted by the access gate.
type DonationService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateRequestInput) (*CreateRequestResult, error)
	Get(ctx context.Context, id string) (*domain.DonationRequest, error)
	GetPending(ctx context.Context, id string) (*domain.DonationRequest, error)
	List(ctx context.Context, actor domain.Actor, input ListRequestsInput) ([]*domain.DonationRequest, error)
	ListPending(ctx context.Context) ([]*domain.DonationRequest, error)
	Confirm(ctx context.Context, actor domain.Actor, id string) (*domain.DonationRequest, error)
	Finalize(ctx context.Context, actor domain.Actor, id, status string) (*domain.DonationRequest, error)
	Moderate(ctx context.Context, actor domain.Actor, id, status string) (*domain.DonationRequest, error)
	Patch(ctx context.Context, actor domain.Actor, id string, input PatchRequestInput) (*domain.DonationRequest, error)
	Replace(ctx context.Context, actor domain.Actor, id string, details domain.RequestDetails) (*domain.DonationRequest, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
