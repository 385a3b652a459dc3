package ports

import (
	"context"

	"github.com/inkwell/publishing-api/internal/core/domain"
)

// UserRepository defines persistence for user identities.
//
// The consume operations are deliberately compare-and-set shaped: the store
// performs a single conditional document update so that duplicate-email and
// OTP-replay races serialize at the database rather than in handler code.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrDuplicateEmail when an
	// identity with the same email already exists (unique index on email).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)

	// SetEmailOTP overwrites the email-verification slot, discarding any
	// prior unconsumed code.
	SetEmailOTP(ctx context.Context, email string, otp domain.OTPSlot) error

	// ConsumeEmailOTP marks the user verified and clears the email OTP slot
	// in one conditional update, matched on the stored code. It reports
	// false when the code no longer matches (already consumed or replaced).
	ConsumeEmailOTP(ctx context.Context, id, code string) (bool, error)

	// SetResetOTP overwrites the password-reset slot.
	SetResetOTP(ctx context.Context, email string, otp domain.OTPSlot) error

	// ConsumeResetOTP rewrites the password hash and clears the reset slot
	// in one conditional update, matched on the stored code. It reports
	// false when the code no longer matches.
	ConsumeResetOTP(ctx context.Context, id, code, passwordHash string) (bool, error)

	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateProfile(ctx context.Context, id, username string, interests []string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
