package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-api/internal/core/ports"
)

// ArticleHandler handles the /api/articles route group.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// Create handles POST /api/articles.
func (h *ArticleHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.service.Create(c.Request().Context(), articleInput(req), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toArticleResponse(article))
}

// List handles GET /api/articles with optional search/category/userId
// filters. Signed-in readers get articles matching their interests first.
func (h *ArticleHandler) List(c echo.Context) error {
	filter := ports.ContentFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		AuthorID: c.QueryParam("userId"),
	}

	articles, err := h.service.List(c.Request().Context(), filter, optionalUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponses(articles))
}

// Get handles GET /api/articles/:id.
func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// ListByUser handles GET /api/articles/user/:userId.
func (h *ArticleHandler) ListByUser(c echo.Context) error {
	articles, err := h.service.ListByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponses(articles))
}

// Update handles PUT /api/articles/:id. Author only.
func (h *ArticleHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.service.Update(c.Request().Context(), c.Param("id"), articleInput(req), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// Delete handles DELETE /api/articles/:id. Author or admin.
func (h *ArticleHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Article deleted successfully"})
}

func articleInput(req articleRequest) ports.ArticleInput {
	return ports.ArticleInput{
		Title:        req.Title,
		Introduction: req.Introduction,
		Body:         req.Body,
		Conclusion:   req.Conclusion,
		References:   req.References,
		Tags:         req.Tags,
		Category:     req.Category,
		Thumbnail:    req.Thumbnail,
	}
}
