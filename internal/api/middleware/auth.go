package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-api/internal/core/ports"
)

// UserContextKey is where Authenticate stores the loaded *domain.User.
const UserContextKey = "user"

// Authenticate validates the bearer access token and loads the referenced
// user into the request context. It is a pure gate: it never mutates account
// state and is idempotent. A token whose user no longer exists fails with
// 401, same as a bad token.
func Authenticate(tokens ports.TokenIssuer, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1], ports.TokenAccess)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// OptionalAuthenticate loads the user when a valid bearer token is present
// and otherwise lets the request through anonymously. Used on public listing
// routes that personalise their ordering for signed-in readers.
func OptionalAuthenticate(tokens ports.TokenIssuer, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			claims, err := tokens.Verify(parts[1], ports.TokenAccess)
			if err != nil {
				return next(c)
			}
			if user, err := users.FindByID(c.Request().Context(), claims.UserID); err == nil {
				c.Set(UserContextKey, user)
			}
			return next(c)
		}
	}
}
