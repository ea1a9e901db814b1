package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifedrop/blood-donation-api/internal/api/middleware"
	"github.com/lifedrop/blood-donation-api/internal/core/domain"
)

// ctxActor extracts the actor injected by the Authorize middleware. Its
// absence means the route was registered without the gate; fail closed.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := middleware.Actor(c)
	if !ok || actor.Email == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}

// ctxEmail extracts the verified email injected by the Authenticate middleware.
func ctxEmail(c echo.Context) (string, error) {
	email := middleware.Email(c)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(domain.ErrValidation)
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}
