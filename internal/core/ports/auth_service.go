package ports

import (
	"context"

	"github.com/inkwell/publishing-api/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Interests []string
}

// RegisterResult reports the outcome of a registration. EmailSent is false
// when the account was created but the verification mail could not be
// delivered; registration is never rolled back on delivery failure.
type RegisterResult struct {
	Email     string
	EmailSent bool
}

// AuthResult is returned by operations that establish a session.
type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// AuthService orchestrates the credential lifecycle:
// registration with OTP verification, login, and password change/reset.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	VerifyEmail(ctx context.Context, email, code string) (*AuthResult, error)
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	// VerifyResetOTP is a read-only check: it validates the reset code
	// without consuming it, so the same code remains valid for the
	// subsequent ResetPassword call.
	VerifyResetOTP(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}
