package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the permission tier of a platform participant.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

// ParseRole validates a role name coming from a request payload.
func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case RoleDonor, RoleVolunteer, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: role must be one of donor, volunteer, admin", ErrValidation)
	}
}

// UserStatus marks whether an account may use role-gated operations.
type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserBlocked UserStatus = "blocked"
)

// ParseUserStatus validates a user status coming from a request payload.
func ParseUserStatus(raw string) (UserStatus, error) {
	switch s := UserStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case UserActive, UserBlocked:
		return s, nil
	default:
		return "", fmt.Errorf("%w: status must be one of active, blocked", ErrValidation)
	}
}

// User is a registered platform participant. Email is the identity key that
// ties a verified credential to role and ownership checks.
type User struct {
	ID         string     `json:"_id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Avatar     string     `json:"avatar,omitempty"`
	BloodGroup string     `json:"bloodGroup"`
	District   string     `json:"district"`
	Upazila    string     `json:"upazila"`
	Role       Role       `json:"role"`
	Status     UserStatus `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// ProfilePatch holds the self-service profile fields. Email, role and status
// are deliberately absent.
type ProfilePatch struct {
	Name       *string
	Avatar     *string
	BloodGroup *string
	District   *string
	Upazila    *string
}

// IsEmpty reports whether the patch carries no field at all.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Avatar == nil && p.BloodGroup == nil && p.District == nil && p.Upazila == nil
}

// Actor is the authenticated caller as resolved by the access gate.
type Actor struct {
	Email string
	Name  string
	Role  Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Is reports whether email identifies this actor.
func (a Actor) Is(email string) bool {
	return a.Email != "" && SameEmail(a.Email, email)
}

// DisplayName returns the actor's profile name or, failing that, the local
// part of the email address.
func (a Actor) DisplayName() string {
	if strings.TrimSpace(a.Name) != "" {
		return a.Name
	}
	return LocalPart(a.Email)
}

// NormalizeEmail lower-cases and trims an address for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SameEmail compares two addresses case-insensitively.
func SameEmail(a, b string) bool {
	return NormalizeEmail(a) == NormalizeEmail(b)
}

// LocalPart returns the portion of an address before '@'.
func LocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
