package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-api/internal/api/middleware"
	"github.com/inkwell/publishing-api/internal/core/domain"
	"github.com/inkwell/publishing-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error)
	verifyEmailFn    func(ctx context.Context, email, code string) (*ports.AuthResult, error)
	loginFn          func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	changePasswordFn func(ctx context.Context, userID, current, next string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) VerifyEmail(ctx context.Context, email, code string) (*ports.AuthResult, error) {
	return s.verifyEmailFn(ctx, email, code)
}

func (s *stubAuthService) ResendOTP(context.Context, string) error { return nil }

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return s.changePasswordFn(ctx, userID, current, next)
}

func (s *stubAuthService) ForgotPassword(context.Context, string) error { return nil }

func (s *stubAuthService) VerifyResetOTP(context.Context, string, string) error { return nil }

func (s *stubAuthService) ResetPassword(context.Context, string, string, string) error {
	return nil
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return body
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
			if in.Username != "alice" || in.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.RegisterResult{Email: in.Email, EmailSent: true}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"s3cret99"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["message"] != "Registration successful. Please check your email for OTP verification." {
		t.Fatalf("unexpected message %q", body["message"])
	}
	if body["email"] != "alice@example.com" {
		t.Fatalf("unexpected email %q", body["email"])
	}
}

func TestAuthHandler_Register_MailFailureMessage(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
			return &ports.RegisterResult{Email: in.Email, EmailSent: false}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"s3cret99"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("delivery failure must still be 201, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if !strings.Contains(body["message"].(string), "failed to send verification email") {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.RegisterResult, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	cases := []string{
		`not-json`,
		`{"username":"al","email":"alice@example.com","password":"s3cret99"}`, // username too short
		`{"username":"alice","email":"not-an-email","password":"s3cret99"}`,
		`{"username":"alice","email":"alice@example.com","password":"short"}`,
	}
	for _, body := range cases {
		c, _ := newTestContext(t, http.MethodPost, "/api/auth/register", body)
		err := h.Register(c)
		if err == nil {
			t.Fatalf("payload %q: expected error", body)
		}
		if code := httpStatus(t, err); code != http.StatusBadRequest {
			t.Fatalf("payload %q: expected 400, got %d", body, code)
		}
	}
}

func TestAuthHandler_VerifyEmail_Success(t *testing.T) {
	stub := &stubAuthService{
		verifyEmailFn: func(_ context.Context, email, code string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || code != "123456" {
				t.Fatalf("unexpected args: %s %s", email, code)
			}
			return &ports.AuthResult{
				User:         &domain.User{ID: "u1", Username: "alice", Email: email, Role: domain.RoleMember, IsVerified: true},
				AccessToken:  "acc",
				RefreshToken: "ref",
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/verify-email",
		`{"email":"alice@example.com","otp":"123456"}`)

	if err := h.VerifyEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["accessToken"] != "acc" || body["refreshToken"] != "ref" {
		t.Fatalf("tokens missing: %v", body)
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" || user["is_verified"] != true {
		t.Fatalf("unexpected user payload: %v", body["user"])
	}
}

func TestAuthHandler_VerifyEmail_BadCodeLength(t *testing.T) {
	stub := &stubAuthService{
		verifyEmailFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/verify-email",
		`{"email":"alice@example.com","otp":"12345"}`)

	err := h.VerifyEmail(c)
	if err == nil {
		t.Fatalf("expected error for 5-digit code")
	}
	if code := httpStatus(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			return &ports.AuthResult{
				User:         &domain.User{ID: "u1", Username: "alice", Email: email, Role: domain.RoleAdmin, IsVerified: true},
				AccessToken:  "acc",
				RefreshToken: "ref",
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"s3cret99"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]any)
	if !ok || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %v", body["user"])
	}
}

func TestAuthHandler_Login_ServiceErrorPropagates(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong999"}`)

	// Domain errors pass through untouched; the central error handler maps
	// them to status codes.
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	stub := &stubAuthService{
		changePasswordFn: func(_ context.Context, userID, current, next string) error {
			if userID != "u1" || current != "oldpass99" || next != "newpass99" {
				t.Fatalf("unexpected args: %s %s %s", userID, current, next)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/change-password",
		`{"current_password":"oldpass99","new_password":"newpass99"}`)
	c.Set(middleware.UserContextKey, &domain.User{ID: "u1"})

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Password updated successfully" {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestAuthHandler_ChangePassword_NoSession(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/change-password",
		`{"current_password":"oldpass99","new_password":"newpass99"}`)

	err := h.ChangePassword(c)
	if err == nil {
		t.Fatalf("expected error without a session")
	}
	if code := httpStatus(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
