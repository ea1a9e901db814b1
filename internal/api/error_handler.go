package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/pkg/logger"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, gate rejections, 404 from router).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	if code, ok := statusFor(err); ok {
		return code, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	reqLog := logger.From(c.Request().Context(), log)
	reqLog.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrNotPending),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBlogNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, true
	}
	return 0, false
}
