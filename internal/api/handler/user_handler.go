package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

// UserHandler handles registration, profile and user administration routes.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type registerUserRequest struct {
	Name       string `json:"name"       validate:"required,max=120"`
	Email      string `json:"email"      validate:"required,email"`
	Avatar     string `json:"avatar"     validate:"omitempty,url"`
	BloodGroup string `json:"bloodGroup" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	District   string `json:"district"   validate:"required,max=80"`
	Upazila    string `json:"upazila"    validate:"required,max=80"`
}

// updateProfileRequest has no slot for email, role or status.
type updateProfileRequest struct {
	Name       *string `json:"name"       validate:"omitempty,max=120"`
	Avatar     *string `json:"avatar"     validate:"omitempty,url"`
	BloodGroup *string `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	District   *string `json:"district"   validate:"omitempty,max=80"`
	Upazila    *string `json:"upazila"    validate:"omitempty,max=80"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=donor volunteer admin"`
}

type userStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

type roleResponse struct {
	Role domain.Role `json:"role"`
}

// Register handles POST /users.
//
// @Summary      Register the calling user
// @Description  The body email must match the verified credential. New users are active donors.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerUserRequest  true  "Profile"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req registerUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), email, ports.RegisterUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Avatar:     req.Avatar,
		BloodGroup: req.BloodGroup,
		District:   req.District,
		Upazila:    req.Upazila,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// List handles GET /users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "active or blocked"
// @Success      200     {array}   domain.User
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(users))
}

// Search handles GET /users/search.
//
// @Summary      Search active donors
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        bloodGroup  query     string  false  "Blood group"
// @Param        district    query     string  false  "District"
// @Param        upazila     query     string  false  "Upazila, matched case-insensitively"
// @Success      200         {array}   domain.User
// @Router       /users/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	users, err := h.service.Search(c.Request().Context(), ports.DonorSearch{
		BloodGroup: c.QueryParam("bloodGroup"),
		District:   c.QueryParam("district"),
		Upazila:    c.QueryParam("upazila"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(users))
}

// Get handles GET /users/:email.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  domain.User
// @Failure      404    {object}  errorResponse
// @Router       /users/{email} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /users/:email.
//
// @Summary      Update a user profile
// @Description  Allowed for the user themself or an admin. Email, role and status never change here.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string                true  "User email"
// @Param        body   body      updateProfileRequest  true  "Profile fields"
// @Success      200    {object}  domain.User
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /users/{email} [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), actor, c.Param("email"), domain.ProfilePatch{
		Name:       req.Name,
		Avatar:     req.Avatar,
		BloodGroup: req.BloodGroup,
		District:   req.District,
		Upazila:    req.Upazila,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Role handles GET /users/:email/role.
//
// @Summary      Get the role of a user
// @Description  Unknown users report the default donor role.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  roleResponse
// @Router       /users/{email}/role [get]
func (h *UserHandler) Role(c echo.Context) error {
	role, err := h.service.RoleOf(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roleResponse{Role: role})
}

// SetRole handles PATCH /users/:id/role.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "User id"
// @Param        body  body      roleRequest  true  "New role"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id}/role [patch]
func (h *UserHandler) SetRole(c echo.Context) error {
	var req roleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.SetRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetStatus handles PATCH /users/:id/status.
//
// @Summary      Block or unblock a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      userStatusRequest  true  "New status"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id}/status [patch]
func (h *UserHandler) SetStatus(c echo.Context) error {
	var req userStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
