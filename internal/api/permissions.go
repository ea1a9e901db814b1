package api

import (
	"github.com/labstack/echo/v4"

	"github.com/lifedrop/blood-donation-api/internal/api/middleware"
	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

// Operation names a gated route group in the permission table.
type Operation string

const (
	OpListRequests   Operation = "requests.list"
	OpReadRequest    Operation = "requests.read"
	OpCreateRequest  Operation = "requests.create"
	OpConfirmRequest Operation = "requests.confirm"
	OpFinalize       Operation = "requests.finalize"
	OpModerate       Operation = "requests.moderate"
	OpUpdateRequest  Operation = "requests.update"
	OpDeleteRequest  Operation = "requests.delete"

	OpListUsers    Operation = "users.list"
	OpSearchUsers  Operation = "users.search"
	OpReadProfile  Operation = "users.read"
	OpEditProfile  Operation = "users.edit"
	OpReadRole     Operation = "users.role"
	OpAdministrate Operation = "users.admin"

	OpListBlogs   Operation = "blogs.list"
	OpWriteBlog   Operation = "blogs.write"
	OpManageBlogs Operation = "blogs.manage"
)

var (
	everyone     = []domain.Role{domain.RoleDonor, domain.RoleVolunteer, domain.RoleAdmin}
	staff        = []domain.Role{domain.RoleVolunteer, domain.RoleAdmin}
	adminsOnly   = []domain.Role{domain.RoleAdmin}
	requesterish = []domain.Role{domain.RoleDonor, domain.RoleAdmin}
)

// Permissions is the single declaration of which roles may reach each
// operation. Ownership is decided later against the stored document.
var Permissions = map[Operation][]domain.Role{
	OpListRequests:   everyone,
	OpReadRequest:    everyone,
	OpCreateRequest:  requesterish,
	OpConfirmRequest: everyone,
	OpFinalize:       everyone,
	OpModerate:       staff,
	OpUpdateRequest:  everyone,
	OpDeleteRequest:  everyone,

	OpListUsers:    staff,
	OpSearchUsers:  everyone,
	OpReadProfile:  everyone,
	OpEditProfile:  everyone,
	OpReadRole:     everyone,
	OpAdministrate: adminsOnly,

	OpListBlogs:   everyone,
	OpWriteBlog:   staff,
	OpManageBlogs: adminsOnly,
}

// gate returns the Authorize middleware for op. An operation missing from
// the table admits nobody.
func gate(users middleware.UserLookup, op Operation) echo.MiddlewareFunc {
	return middleware.Authorize(users, string(op), Permissions[op]...)
}
