package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lifedrop/blood-donation-api/internal/api/metrics"
	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

const (
	// ContextKeyEmail holds the verified caller email set by Authenticate.
	ContextKeyEmail = "email"
	// ContextKeyActor holds the domain.Actor set by Authorize.
	ContextKeyActor = "actor"

	// SessionCookie is the cookie POST /jwt sets for browser clients.
	SessionCookie = "token"
)

// Authenticate verifies the bearer credential and injects the caller email
// into context. The Authorization header wins over the session cookie.
func Authenticate(verifier ports.CredentialVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential, err := bearerCredential(c)
			if err != nil {
				metrics.GateDeniedTotal.WithLabelValues("authenticate", "unauthenticated").Inc()
				return err
			}

			identity, err := verifier.Verify(c.Request().Context(), credential)
			if err != nil || identity == nil || strings.TrimSpace(identity.Email) == "" {
				metrics.GateDeniedTotal.WithLabelValues("authenticate", "unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(domain.ErrUnauthenticated)
			}

			c.Set(ContextKeyEmail, domain.NormalizeEmail(identity.Email))
			return next(c)
		}
	}
}

func bearerCredential(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header").SetInternal(domain.ErrUnauthenticated)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header").SetInternal(domain.ErrUnauthenticated)
	}
	return strings.TrimSpace(parts[1]), nil
}

// Email returns the caller email injected by Authenticate.
func Email(c echo.Context) string {
	email, _ := c.Get(ContextKeyEmail).(string)
	return email
}
