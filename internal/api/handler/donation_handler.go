package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

// HeaderIdempotencyKey deduplicates retried creations.
const HeaderIdempotencyKey = "Idempotency-Key"

// DonationHandler handles HTTP requests for donation request operations.
type DonationHandler struct {
	service ports.DonationService
}

func NewDonationHandler(service ports.DonationService) *DonationHandler {
	return &DonationHandler{service: service}
}

// Create handles POST /donationRequests.
//
// @Summary      Create a donation request
// @Description  The request always starts pending with no donor. Donors may only create requests for their own email.
// @Tags         donationRequests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                 false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createDonationRequest  true   "Request details"
// @Success      201              {object}  createDonationResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /donationRequests [post]
func (h *DonationHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createDonationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), actor, ports.CreateRequestInput{
		RequesterEmail: req.RequesterEmail,
		Details:        req.toDomain(),
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey)),
	})
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		c.Response().Header().Set("Idempotent-Replayed", "true")
	}
	return c.JSON(http.StatusCreated, createDonationResponse{Acknowledged: true, InsertedID: result.ID})
}

// List handles GET /donationRequests.
//
// @Summary      List donation requests
// @Description  Donors only ever see the requests they created.
// @Tags         donationRequests
// @Produce      json
// @Security     BearerAuth
// @Param        status          query     string  false  "pending, inprogress, done or canceled"
// @Param        requesterEmail  query     string  false  "Requester email"
// @Param        donorEmail      query     string  false  "Assigned donor email"
// @Success      200             {array}   domain.DonationRequest
// @Failure      400             {object}  errorResponse
// @Failure      401             {object}  errorResponse
// @Failure      403             {object}  errorResponse
// @Router       /donationRequests [get]
func (h *DonationHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	requests, err := h.service.List(c.Request().Context(), actor, ports.ListRequestsInput{
		Status:         c.QueryParam("status"),
		RequesterEmail: c.QueryParam("requesterEmail"),
		DonorEmail:     c.QueryParam("donorEmail"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(requests))
}

// ListPending handles GET /donationRequests/pending.
//
// @Summary      List pending donation requests
// @Tags         donationRequests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.DonationRequest
// @Failure      401  {object}  errorResponse
// @Router       /donationRequests/pending [get]
func (h *DonationHandler) ListPending(c echo.Context) error {
	requests, err := h.service.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(requests))
}

// GetPending handles GET /donationRequests/pending/:id.
//
// @Summary      Get a pending donation request
// @Tags         donationRequests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.DonationRequest
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /donationRequests/pending/{id} [get]
func (h *DonationHandler) GetPending(c echo.Context) error {
	req, err := h.service.GetPending(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, req)
}

// Get handles GET /donationRequests/:id.
//
// @Summary      Get a donation request
// @Tags         donationRequests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.DonationRequest
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /donationRequests/{id} [get]
func (h *DonationHandler) Get(c echo.Context) error {
	req, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, req)
}

// Confirm handles POST /donationRequests/:id/confirm.
//
// @Summary      Volunteer as donor for a pending request
// @Description  Atomic pending → inprogress. Of concurrent confirmations exactly one succeeds.
// @Tags         donationRequests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  confirmDonationResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /donationRequests/{id}/confirm [post]
func (h *DonationHandler) Confirm(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	updated, err := h.service.Confirm(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	resp := confirmDonationResponse{Message: "donation confirmed", Request: updated}
	if updated.DonorName != nil {
		resp.DonorName = *updated.DonorName
	}
	if updated.DonorEmail != nil {
		resp.DonorEmail = *updated.DonorEmail
	}
	return c.JSON(http.StatusOK, resp)
}

// Finalize handles PATCH /donationRequests/:id/status/donor.
//
// @Summary      Mark an inprogress request done or canceled
// @Description  Only the assigned donor may finalize. "cancelled" is accepted as "canceled".
// @Tags         donationRequests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Request id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  domain.DonationRequest
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /donationRequests/{id}/status/donor [patch]
func (h *DonationHandler) Finalize(c echo.Context) error {
	return h.setStatus(c, h.service.Finalize)
}

// Moderate handles PATCH /donationRequests/:id/status/admin.
//
// @Summary      Move a request along the lifecycle as staff
// @Tags         donationRequests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Request id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  domain.DonationRequest
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /donationRequests/{id}/status/admin [patch]
func (h *DonationHandler) Moderate(c echo.Context) error {
	return h.setStatus(c, h.service.Moderate)
}

type statusFunc func(ctx context.Context, actor domain.Actor, id, status string) (*domain.DonationRequest, error)

func (h *DonationHandler) setStatus(c echo.Context, apply statusFunc) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := apply(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Patch handles PATCH /donationRequests/:id.
//
// @Summary      Partially update a donation request
// @Description  Status, donor assignment and descriptive fields. _id, requesterEmail and createdAt are ignored.
// @Tags         donationRequests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Request id"
// @Param        body  body      patchDonationRequest  true  "Fields to change"
// @Success      200   {object}  domain.DonationRequest
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /donationRequests/{id} [patch]
func (h *DonationHandler) Patch(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req patchDonationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.service.Patch(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Replace handles PUT /donationRequests/:id.
//
// @Summary      Replace the details of a donation request
// @Description  createdAt, requesterEmail, status and donor fields are preserved.
// @Tags         donationRequests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Request id"
// @Param        body  body      replaceDonationRequest  true  "Replacement details"
// @Success      200   {object}  domain.DonationRequest
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /donationRequests/{id} [put]
func (h *DonationHandler) Replace(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req replaceDonationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.service.Replace(c.Request().Context(), actor, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /donationRequests/:id.
//
// @Summary      Delete a donation request
// @Tags         donationRequests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  deleteDonationResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /donationRequests/{id} [delete]
func (h *DonationHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteDonationResponse{Message: "donation request deleted", DeletedCount: 1})
}

// nonNil keeps empty listings rendering as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
