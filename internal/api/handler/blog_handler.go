package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

// BlogHandler handles blog routes.
type BlogHandler struct {
	service ports.BlogService
}

func NewBlogHandler(service ports.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

type createBlogRequest struct {
	Title     string `json:"title"     validate:"required,max=200"`
	Content   string `json:"content"   validate:"required"`
	Thumbnail string `json:"thumbnail" validate:"required,url"`
	Status    string `json:"status"    validate:"omitempty,oneof=draft published"`
}

// List handles GET /blogs.
//
// @Summary      List blogs
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "draft or published"
// @Success      200     {array}   domain.Blog
// @Failure      400     {object}  errorResponse
// @Router       /blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	blogs, err := h.service.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(blogs))
}

// Create handles POST /blogs.
//
// @Summary      Create a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBlogRequest  true  "Blog"
// @Success      201   {object}  domain.Blog
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	var req createBlogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	blog, err := h.service.Create(c.Request().Context(), ports.CreateBlogInput{
		Title:     req.Title,
		Content:   req.Content,
		Thumbnail: req.Thumbnail,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, blog)
}

// Publish handles PATCH /blogs/:id/publish.
//
// @Summary      Publish a blog
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Blog id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /blogs/{id}/publish [patch]
func (h *BlogHandler) Publish(c echo.Context) error {
	if err := h.service.Publish(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "blog published"})
}

// Unpublish handles PATCH /blogs/:id/unpublish.
//
// @Summary      Move a blog back to draft
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Blog id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /blogs/{id}/unpublish [patch]
func (h *BlogHandler) Unpublish(c echo.Context) error {
	if err := h.service.Unpublish(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "blog unpublished"})
}

// Delete handles DELETE /blogs/:id.
//
// @Summary      Delete a blog
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Blog id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "blog deleted"})
}
