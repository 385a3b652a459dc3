package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-api/internal/core/ports"
)

// BlogHandler handles the /api/blogs route group.
type BlogHandler struct {
	service ports.BlogService
}

func NewBlogHandler(service ports.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// Create handles POST /api/blogs.
//
// @Summary      Create a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      blogRequest  true  "Blog fields"
// @Success      201   {object}  blogResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	blog, err := h.service.Create(c.Request().Context(), ports.BlogInput{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Thumbnail: req.Thumbnail,
	}, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toBlogResponse(blog))
}

// List handles GET /api/blogs with optional search/category/userId filters.
// Signed-in readers get blogs matching their interests first.
func (h *BlogHandler) List(c echo.Context) error {
	filter := ports.ContentFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		AuthorID: c.QueryParam("userId"),
	}

	blogs, err := h.service.List(c.Request().Context(), filter, optionalUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogResponses(blogs))
}

// Get handles GET /api/blogs/:id.
func (h *BlogHandler) Get(c echo.Context) error {
	blog, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogResponse(blog))
}

// ListByUser handles GET /api/blogs/user/:userId.
func (h *BlogHandler) ListByUser(c echo.Context) error {
	blogs, err := h.service.ListByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogResponses(blogs))
}

// Update handles PUT /api/blogs/:id. Author only.
func (h *BlogHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	blog, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.BlogInput{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Thumbnail: req.Thumbnail,
	}, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogResponse(blog))
}

// Delete handles DELETE /api/blogs/:id. Author or admin.
func (h *BlogHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Blog deleted successfully"})
}

// UploadImage handles POST /api/blogs/upload-image: stores a base64 data-URI
// image and returns its URL.
func (h *BlogHandler) UploadImage(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	var req uploadImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no image provided")
	}

	url, err := h.service.UploadImage(c.Request().Context(), req.Image)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to upload image")
	}
	return c.JSON(http.StatusOK, uploadImageResponse{URL: url})
}
