package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifedrop/blood-donation-api/internal/api/metrics"
	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

// UserLookup resolves the stored user behind a verified email.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Authorize admits the caller only when a user record exists for the
// verified email, the account is active and its role is one of allowedRoles.
// It must run after Authenticate.
func Authorize(users UserLookup, operation string, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	deny := func(reason string) error {
		metrics.GateDeniedTotal.WithLabelValues(operation, reason).Inc()
		return echo.NewHTTPError(http.StatusForbidden, "forbidden access").SetInternal(domain.ErrForbidden)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := Email(c)
			if email == "" {
				metrics.GateDeniedTotal.WithLabelValues(operation, "unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication").SetInternal(domain.ErrUnauthenticated)
			}

			user, err := users.FindByEmail(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return deny("unknown_user")
				}
				return err
			}
			if user.Status == domain.UserBlocked {
				return deny("blocked")
			}
			if _, ok := allowed[user.Role]; !ok {
				return deny("role")
			}

			c.Set(ContextKeyActor, domain.Actor{Email: email, Name: user.Name, Role: user.Role})
			return next(c)
		}
	}
}

// Actor returns the caller admitted by Authorize.
func Actor(c echo.Context) (domain.Actor, bool) {
	actor, ok := c.Get(ContextKeyActor).(domain.Actor)
	return actor, ok
}
