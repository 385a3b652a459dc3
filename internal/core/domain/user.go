package domain

import (
	"errors"
	"time"
)

// Role classifies an account for authorization decisions. It is a closed
// enumeration: authorization sites match against these constants, never
// against raw strings.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleAdmin:
		return true
	}
	return false
}

// OTPSlot is a single-use numeric code bound to an absolute expiry.
// A user carries two independent slots: one for email verification and one
// for password reset. A nil slot means no code is outstanding.
type OTPSlot struct {
	Code   string    `json:"-"`
	Expiry time.Time `json:"-"`
}

// User is the identity aggregate: credentials, verification state, role and
// the two OTP slots. PasswordHash is a bcrypt hash; the raw password is
// never stored or serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsVerified   bool      `json:"is_verified"`
	Interests    []string  `json:"interests"`
	EmailOTP     *OTPSlot  `json:"-"`
	ResetOTP     *OTPSlot  `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Account lifecycle and authentication errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("please verify your email first")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidInterest    = errors.New("one or more invalid interest ids")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")
	ErrCannotDeleteAdmin  = errors.New("cannot delete admin users")
)

// OTP validation errors. The three reasons stay distinguishable so callers
// can surface distinct messages; the reset-password boundary collapses all
// of them into ErrOTPInvalidOrExpired.
var (
	ErrOTPAbsent           = errors.New("no otp found, please request a new one")
	ErrOTPMismatch         = errors.New("invalid otp")
	ErrOTPExpired          = errors.New("otp has expired, please request a new one")
	ErrOTPInvalidOrExpired = errors.New("invalid or expired otp")
)

// Token errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ErrForbidden is returned when an authenticated user lacks the rights for
// the requested operation.
var ErrForbidden = errors.New("access forbidden")
