package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

// UserService implements registration, profile and user administration.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates the caller's own user record. New users are active donors.
func (s *UserService) Register(ctx context.Context, callerEmail string, input ports.RegisterUserInput) (*domain.User, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", input.Name},
		{"email", input.Email},
		{"bloodGroup", input.BloodGroup},
		{"district", input.District},
		{"upazila", input.Upazila},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s required", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if !domain.SameEmail(callerEmail, input.Email) {
		return nil, fmt.Errorf("%w: users may only register their own address", domain.ErrForbidden)
	}

	user := &domain.User{
		Name:       strings.TrimSpace(input.Name),
		Email:      domain.NormalizeEmail(input.Email),
		Avatar:     input.Avatar,
		BloodGroup: input.BloodGroup,
		District:   input.District,
		Upazila:    input.Upazila,
		Role:       domain.RoleDonor,
		Status:     domain.UserActive,
		CreatedAt:  s.now(),
	}

	id, err := s.repo.Create(ctx, user)
	if err != nil {
		if !errors.Is(err, domain.ErrUserExists) {
			s.logger.Error().Err(err).Str("email", user.Email).Msg("failed to register user")
		}
		return nil, err
	}
	user.ID = id

	s.logger.Info().Str("email", user.Email).Msg("user registered")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
}

// RoleOf returns the user's role, or donor when the address is unknown.
func (s *UserService) RoleOf(ctx context.Context, email string) (domain.Role, error) {
	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.RoleDonor, nil
		}
		return "", err
	}
	if user.Role == "" {
		return domain.RoleDonor, nil
	}
	return user.Role, nil
}

func (s *UserService) List(ctx context.Context, status string) ([]*domain.User, error) {
	var st domain.UserStatus
	if strings.TrimSpace(status) != "" {
		parsed, err := domain.ParseUserStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}
	return s.repo.List(ctx, st)
}

func (s *UserService) Search(ctx context.Context, q ports.DonorSearch) ([]*domain.User, error) {
	return s.repo.Search(ctx, ports.DonorSearch{
		BloodGroup: strings.TrimSpace(q.BloodGroup),
		District:   strings.TrimSpace(q.District),
		Upazila:    strings.TrimSpace(q.Upazila),
	})
}

// UpdateProfile edits profile fields of email. Users edit their own profile;
// admins may edit anyone's.
func (s *UserService) UpdateProfile(ctx context.Context, actor domain.Actor, email string, patch domain.ProfilePatch) (*domain.User, error) {
	if !actor.Is(email) && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: users may only edit their own profile", domain.ErrForbidden)
	}
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: no profile fields to update", domain.ErrValidation)
	}
	return s.repo.UpdateProfile(ctx, domain.NormalizeEmail(email), patch, s.now())
}

func (s *UserService) SetRole(ctx context.Context, id, role string) (*domain.User, error) {
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.SetRole(ctx, id, r, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Str("role", string(r)).Msg("user role changed")
	return user, nil
}

func (s *UserService) SetStatus(ctx context.Context, id, status string) (*domain.User, error) {
	st, err := domain.ParseUserStatus(status)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.SetStatus(ctx, id, st, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Str("status", string(st)).Msg("user status changed")
	return user, nil
}
