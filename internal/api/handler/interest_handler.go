package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-api/internal/core/ports"
)

// InterestHandler handles the /api/interests route group. Reads are public;
// mutations are admin-gated by the router.
type InterestHandler struct {
	service ports.InterestService
}

func NewInterestHandler(service ports.InterestService) *InterestHandler {
	return &InterestHandler{service: service}
}

type interestRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// Create handles POST /api/interests.
func (h *InterestHandler) Create(c echo.Context) error {
	var req interestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	interest, err := h.service.Create(c.Request().Context(), ports.InterestInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, interest)
}

// List handles GET /api/interests.
func (h *InterestHandler) List(c echo.Context) error {
	interests, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, interests)
}

// Get handles GET /api/interests/:id.
func (h *InterestHandler) Get(c echo.Context) error {
	interest, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, interest)
}

// Update handles PUT /api/interests/:id.
func (h *InterestHandler) Update(c echo.Context) error {
	var req interestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	interest, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.InterestInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, interest)
}

// Delete handles DELETE /api/interests/:id.
func (h *InterestHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Interest deleted successfully"})
}
