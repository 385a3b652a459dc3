package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/publishing-api/internal/core/domain"
	"github.com/inkwell/publishing-api/internal/core/ports"
)

func newAuthFixture() (*AuthService, *stubUserRepo, *stubMailer) {
	users := newStubUserRepo()
	interests := newStubInterestRepo("tech", "science")
	mailer := &stubMailer{}
	tokens := NewTokenIssuer("access-secret", "refresh-secret")
	svc := NewAuthService(users, interests, tokens, NewOTPManager(), mailer, zerolog.Nop())
	return svc, users, mailer
}

func register(t *testing.T, svc *AuthService, email string) {
	t.Helper()
	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    email,
		Password: "s3cret99",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, users, mailer := newAuthFixture()

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "s3cret99",
		Interests: []string{"tech"},
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if !result.EmailSent {
		t.Fatalf("expected EmailSent=true")
	}

	stored, err := users.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.IsVerified {
		t.Fatalf("new account must start unverified")
	}
	if stored.Role != domain.RoleMember {
		t.Fatalf("unexpected role %q", stored.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret99")) != nil {
		t.Fatalf("stored hash does not match password")
	}
	if stored.EmailOTP == nil {
		t.Fatalf("expected an email OTP slot")
	}
	if got, want := stored.EmailOTP.Code, mailer.lastCode("alice@example.com"); got != want {
		t.Fatalf("mailed code %q does not match stored %q", want, got)
	}
	if remaining := time.Until(stored.EmailOTP.Expiry); remaining > 10*time.Minute || remaining < 9*time.Minute {
		t.Fatalf("otp expiry out of range: %v remaining", remaining)
	}
}

func TestAuthService_Register_MailFailureKeepsAccount(t *testing.T) {
	svc, users, mailer := newAuthFixture()
	mailer.fail = true

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "s3cret99",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.EmailSent {
		t.Fatalf("expected EmailSent=false when delivery fails")
	}
	if _, err := users.FindByEmail(context.Background(), "bob@example.com"); err != nil {
		t.Fatalf("account must survive a delivery failure: %v", err)
	}
}

func TestAuthService_Register_UnknownInterest(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:  "carol",
		Email:     "carol@example.com",
		Password:  "s3cret99",
		Interests: []string{"tech", "nope"},
	})
	if !errors.Is(err, domain.ErrInvalidInterest) {
		t.Fatalf("expected ErrInvalidInterest, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	register(t, svc, "dave@example.com")

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "dave2",
		Email:    "dave@example.com",
		Password: "other999",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_VerifyEmail(t *testing.T) {
	svc, _, mailer := newAuthFixture()
	register(t, svc, "erin@example.com")

	code := mailer.lastCode("erin@example.com")
	result, err := svc.VerifyEmail(context.Background(), "erin@example.com", code)
	if err != nil {
		t.Fatalf("VerifyEmail returned error: %v", err)
	}
	if !result.User.IsVerified {
		t.Fatalf("user not marked verified")
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected a token pair on verification")
	}

	// Replaying the code hits the already-verified guard.
	if _, err := svc.VerifyEmail(context.Background(), "erin@example.com", code); !errors.Is(err, domain.ErrAlreadyVerified) {
		t.Fatalf("expected ErrAlreadyVerified on replay, got %v", err)
	}
}

func TestAuthService_VerifyEmail_WrongCode(t *testing.T) {
	svc, _, mailer := newAuthFixture()
	register(t, svc, "frank@example.com")

	code := mailer.lastCode("frank@example.com")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if _, err := svc.VerifyEmail(context.Background(), "frank@example.com", wrong); !errors.Is(err, domain.ErrOTPMismatch) {
		t.Fatalf("expected ErrOTPMismatch, got %v", err)
	}
}

func TestAuthService_VerifyEmail_Expired(t *testing.T) {
	svc, users, mailer := newAuthFixture()
	register(t, svc, "gail@example.com")

	code := mailer.lastCode("gail@example.com")
	for _, u := range users.users {
		u.EmailOTP.Expiry = time.Now().UTC().Add(-time.Minute)
	}
	if _, err := svc.VerifyEmail(context.Background(), "gail@example.com", code); !errors.Is(err, domain.ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
}

func TestAuthService_VerifyEmail_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture()
	if _, err := svc.VerifyEmail(context.Background(), "ghost@example.com", "123456"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ResendOTP(t *testing.T) {
	svc, users, mailer := newAuthFixture()
	register(t, svc, "hank@example.com")

	if err := svc.ResendOTP(context.Background(), "hank@example.com"); err != nil {
		t.Fatalf("ResendOTP returned error: %v", err)
	}

	stored, _ := users.FindByEmail(context.Background(), "hank@example.com")
	if got, want := stored.EmailOTP.Code, mailer.lastCode("hank@example.com"); got != want {
		t.Fatalf("stored code %q does not match last delivery %q", got, want)
	}

	// Verified accounts cannot request a verification code.
	if _, err := svc.VerifyEmail(context.Background(), "hank@example.com", stored.EmailOTP.Code); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if err := svc.ResendOTP(context.Background(), "hank@example.com"); !errors.Is(err, domain.ErrAlreadyVerified) {
		t.Fatalf("expected ErrAlreadyVerified, got %v", err)
	}
}

func verifiedUser(t *testing.T, svc *AuthService, mailer *stubMailer, email string) *domain.User {
	t.Helper()
	register(t, svc, email)
	result, err := svc.VerifyEmail(context.Background(), email, mailer.lastCode(email))
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	return result.User
}

func TestAuthService_Login(t *testing.T) {
	svc, _, mailer := newAuthFixture()
	verifiedUser(t, svc, mailer, "iris@example.com")

	result, err := svc.Login(context.Background(), "iris@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected a token pair")
	}
}

func TestAuthService_Login_NoEnumerationSignal(t *testing.T) {
	svc, _, mailer := newAuthFixture()
	verifiedUser(t, svc, mailer, "judy@example.com")

	// A missing account and a wrong password must be indistinguishable.
	_, missingErr := svc.Login(context.Background(), "ghost@example.com", "whatever1")
	_, wrongErr := svc.Login(context.Background(), "judy@example.com", "wrongpass")

	if !errors.Is(missingErr, domain.ErrInvalidCredentials) {
		t.Fatalf("missing account: expected ErrInvalidCredentials, got %v", missingErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
}

func TestAuthService_Login_Unverified(t *testing.T) {
	svc, _, _ := newAuthFixture()
	register(t, svc, "kate@example.com")

	// The pending-verification state is reported even on a correct password.
	if _, err := svc.Login(context.Background(), "kate@example.com", "s3cret99"); !errors.Is(err, domain.ErrNotVerified) {
		t.Fatalf("expected ErrNotVerified, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _, mailer := newAuthFixture()
	user := verifiedUser(t, svc, mailer, "liam@example.com")

	if err := svc.ChangePassword(context.Background(), user.ID, "badguess", "newpass99"); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "s3cret99", "newpass99"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if _, err := svc.Login(context.Background(), "liam@example.com", "s3cret99"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := svc.Login(context.Background(), "liam@example.com", "newpass99"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestAuthService_PasswordResetFlow(t *testing.T) {
	svc, _, mailer := newAuthFixture()
	verifiedUser(t, svc, mailer, "mona@example.com")

	if err := svc.ForgotPassword(context.Background(), "mona@example.com"); err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	code := mailer.lastCode("mona@example.com")

	// The pre-check does not consume: it may run any number of times.
	for i := 0; i < 2; i++ {
		if err := svc.VerifyResetOTP(context.Background(), "mona@example.com", code); err != nil {
			t.Fatalf("VerifyResetOTP run %d failed: %v", i+1, err)
		}
	}

	if err := svc.ResetPassword(context.Background(), "mona@example.com", code, "brandnew9"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}
	if _, err := svc.Login(context.Background(), "mona@example.com", "brandnew9"); err != nil {
		t.Fatalf("login with reset password failed: %v", err)
	}

	// The code was consumed by the reset; reuse must fail.
	if err := svc.ResetPassword(context.Background(), "mona@example.com", code, "another99"); !errors.Is(err, domain.ErrOTPInvalidOrExpired) {
		t.Fatalf("expected ErrOTPInvalidOrExpired on reuse, got %v", err)
	}
}

func TestAuthService_ResetPassword_CollapsesOTPErrors(t *testing.T) {
	svc, users, mailer := newAuthFixture()
	verifiedUser(t, svc, mailer, "nora@example.com")

	// No reset requested yet: absent, but reported as invalid-or-expired.
	if err := svc.ResetPassword(context.Background(), "nora@example.com", "123456", "newpass99"); !errors.Is(err, domain.ErrOTPInvalidOrExpired) {
		t.Fatalf("absent slot: expected ErrOTPInvalidOrExpired, got %v", err)
	}

	if err := svc.ForgotPassword(context.Background(), "nora@example.com"); err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	code := mailer.lastCode("nora@example.com")

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if err := svc.ResetPassword(context.Background(), "nora@example.com", wrong, "newpass99"); !errors.Is(err, domain.ErrOTPInvalidOrExpired) {
		t.Fatalf("wrong code: expected ErrOTPInvalidOrExpired, got %v", err)
	}

	for _, u := range users.users {
		if u.ResetOTP != nil {
			u.ResetOTP.Expiry = time.Now().UTC().Add(-time.Minute)
		}
	}
	if err := svc.ResetPassword(context.Background(), "nora@example.com", code, "newpass99"); !errors.Is(err, domain.ErrOTPInvalidOrExpired) {
		t.Fatalf("expired code: expected ErrOTPInvalidOrExpired, got %v", err)
	}
}

func TestAuthService_ForgotPassword_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture()
	if err := svc.ForgotPassword(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
