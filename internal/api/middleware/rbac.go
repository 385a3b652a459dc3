package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-api/internal/core/domain"
)

// AdminOnly rejects authenticated requests whose user is not an admin.
// It must run after Authenticate. Like Authenticate, it is a pure gate.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(UserContextKey).(*domain.User)
			if !ok || user.Role != domain.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin rights required")
			}
			return next(c)
		}
	}
}
