package ports

import (
	"context"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

// RegisterUserInput carries a registration payload.
type RegisterUserInput struct {
	Name       string
	Email      string
	Avatar     string
	BloodGroup string
	District   string
	Upazila    string
}

// UserService defines user registration, profile and administration use cases.
type UserService interface {
	Register(ctx context.Context, callerEmail string, input RegisterUserInput) (*domain.User, error)
	Get(ctx context.Context, email string) (*domain.User, error)
	RoleOf(ctx context.Context, email string) (domain.Role, error)
	List(ctx context.Context, status string) ([]*domain.User, error)
	Search(ctx context.Context, q DonorSearch) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, email string, patch domain.ProfilePatch) (*domain.User, error)
	SetRole(ctx context.Context, id, role string) (*domain.User, error)
	SetStatus(ctx context.Context, id, status string) (*domain.User, error)
}
