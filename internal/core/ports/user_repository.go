package ports

import (
	"context"
	"time"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

// DonorSearch filters the public donor search. Upazila matches case-insensitively.
type DonorSearch struct {
	BloodGroup string
	District   string
	Upazila    string
}

// UserRepository defines persistence operations for platform users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns all users, optionally restricted to one status.
	List(ctx context.Context, status domain.UserStatus) ([]*domain.User, error)
	// Search returns active users matching the donor search.
	Search(ctx context.Context, q DonorSearch) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, email string, patch domain.ProfilePatch, now time.Time) (*domain.User, error)
	SetRole(ctx context.Context, id string, role domain.Role, now time.Time) (*domain.User, error)
	SetStatus(ctx context.Context, id string, status domain.UserStatus, now time.Time) (*domain.User, error)
}
