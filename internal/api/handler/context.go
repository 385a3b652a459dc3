package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-api/internal/api/middleware"
	"github.com/inkwell/publishing-api/internal/core/domain"
)

// currentUser extracts the identity injected by the Authenticate middleware.
// Its presence proves the middleware ran; a protected route wired without it
// fails closed with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// optionalUser is currentUser for public routes that personalise output when
// a valid token happens to be present.
func optionalUser(c echo.Context) *domain.User {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	return user
}
