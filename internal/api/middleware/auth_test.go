package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-api/internal/core/domain"
	"github.com/inkwell/publishing-api/internal/core/ports"
)

// stubTokens accepts exactly one opaque token string for the access kind.
type stubTokens struct {
	valid  string
	userID string
}

func (s *stubTokens) IssuePair(_ *domain.User) (string, string, error) {
	return s.valid, "", nil
}

func (s *stubTokens) Verify(token string, kind ports.TokenKind) (*ports.TokenClaims, error) {
	if kind != ports.TokenAccess || token != s.valid {
		return nil, domain.ErrInvalidToken
	}
	return &ports.TokenClaims{UserID: s.userID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// stubUsers resolves a single known user id.
type stubUsers struct {
	ports.UserRepository
	user *domain.User
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, domain.ErrUserNotFound
}

func fixture() (*stubTokens, *stubUsers) {
	tokens := &stubTokens{valid: "good-token", userID: "u1"}
	users := &stubUsers{user: &domain.User{ID: "u1", Username: "alice", Role: domain.RoleMember}}
	return tokens, users
}

func TestAuthenticate_ValidToken(t *testing.T) {
	e := echo.New()
	tokens, users := fixture()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Authenticate(tokens, users)(func(c echo.Context) error {
		called = true
		user, ok := c.Get(UserContextKey).(*domain.User)
		if !ok || user.ID != "u1" {
			t.Fatalf("user not loaded into context: %v", c.Get(UserContextKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	tokens, users := fixture()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"bad token", "Bearer not-the-one"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := Authenticate(tokens, users)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	e := echo.New()
	tokens, users := fixture()
	users.user = nil // token subject no longer exists

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authenticate(tokens, users)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuthenticate(t *testing.T) {
	tokens, users := fixture()

	cases := []struct {
		name     string
		header   string
		wantUser bool
	}{
		{"no header", "", false},
		{"bad token", "Bearer junk", false},
		{"valid token", "Bearer good-token", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			called := false
			handler := OptionalAuthenticate(tokens, users)(func(c echo.Context) error {
				called = true
				_, ok := c.Get(UserContextKey).(*domain.User)
				if ok != tc.wantUser {
					t.Fatalf("user in context = %v, want %v", ok, tc.wantUser)
				}
				return c.NoContent(http.StatusOK)
			})

			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if !called {
				t.Fatalf("next must always run")
			}
		})
	}
}
