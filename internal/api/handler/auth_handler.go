package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lifedrop/blood-donation-api/internal/api/middleware"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

// NewAuthHandler builds the session handler. secureCookie marks the session
// cookie HTTPS-only and should be true outside local development.
func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

type sessionResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IssueSession exchanges the verified identity provider credential for a
// session token, returned in the body and as an httpOnly cookie.
//
// @Summary      Create a session token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /jwt [post]
func (h *AuthHandler) IssueSession(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	session, err := h.authService.IssueSession(c.Request().Context(), ports.Identity{Subject: email, Email: email})
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, sessionResponse{
		Message:   "Jwt created successfully",
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}
