package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-api/internal/core/domain"
)

// errorResponse is the canonical error envelope. Message is always present;
// Error carries the underlying cause on unexpected 500s only.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally before surfacing them.
//   - Renders a consistent JSON envelope: {"message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		// Echo's own errors (bind failures, 404 from router, middleware
		// rejections).
		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)})
			return
		}

		if code, ok := statusFor(err); ok {
			_ = c.JSON(code, errorResponse{Message: err.Error()})
			return
		}

		// Unexpected error: log the real cause and surface it under the
		// error key.
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = c.JSON(http.StatusInternalServerError, errorResponse{
			Message: "internal server error",
			Error:   err.Error(),
		})
	}
}

// statusFor maps domain errors onto the error taxonomy: 400 validation,
// 401 authentication, 403 authorization, 404 not found.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidInterest),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrAlreadyVerified),
		errors.Is(err, domain.ErrOTPAbsent),
		errors.Is(err, domain.ErrOTPMismatch),
		errors.Is(err, domain.ErrOTPExpired),
		errors.Is(err, domain.ErrOTPInvalidOrExpired),
		errors.Is(err, domain.ErrInvalidContactStatus),
		errors.Is(err, domain.ErrCannotDeleteSelf):
		return http.StatusBadRequest, true

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNotVerified),
		errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, true

	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrCannotDeleteAdmin):
		return http.StatusForbidden, true

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBlogNotFound),
		errors.Is(err, domain.ErrArticleNotFound),
		errors.Is(err, domain.ErrInterestNotFound),
		errors.Is(err, domain.ErrContactNotFound):
		return http.StatusNotFound, true
	}
	return 0, false
}
