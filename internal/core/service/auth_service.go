package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/publishing-api/internal/core/domain"
	"github.com/inkwell/publishing-api/internal/core/ports"
)

// AuthService implements the credential lifecycle over the user store:
// unregistered → pending verification → verified.
type AuthService struct {
	users     ports.UserRepository
	interests ports.InterestRepository
	tokens    ports.TokenIssuer
	otp       *OTPManager
	mailer    ports.Mailer
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	interests ports.InterestRepository,
	tokens ports.TokenIssuer,
	otp *OTPManager,
	mailer ports.Mailer,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		interests: interests,
		tokens:    tokens,
		otp:       otp,
		mailer:    mailer,
		logger:    logger,
	}
}

// Register creates an unverified account with a fresh email OTP and attempts
// to deliver the code. A mail delivery failure degrades to EmailSent=false;
// the account is never rolled back.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	if len(in.Interests) > 0 {
		found, err := s.interests.FindByIDs(ctx, in.Interests)
		if err != nil {
			return nil, fmt.Errorf("validate interests: %w", err)
		}
		if len(found) != len(in.Interests) {
			return nil, domain.ErrInvalidInterest
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	slot, err := s.otp.Issue()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		IsVerified:   false,
		Interests:    in.Interests,
		EmailOTP:     &slot,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	result := &ports.RegisterResult{Email: in.Email, EmailSent: true}
	if err := s.mailer.SendOTP(ctx, in.Email, "Email Verification OTP", slot.Code); err != nil {
		s.logger.Warn().Err(err).Str("email", in.Email).Msg("verification mail delivery failed")
		result.EmailSent = false
	}

	s.logger.Info().Str("email", in.Email).Msg("user registered, pending verification")
	return result, nil
}

// VerifyEmail consumes the email OTP and transitions the account to
// verified, returning a fresh token pair.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (*ports.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return nil, domain.ErrAlreadyVerified
	}
	if err := s.otp.Validate(user.EmailOTP, code, time.Now().UTC()); err != nil {
		return nil, err
	}

	// Conditional single-document update: a concurrent consumer that wins
	// the race leaves no matching slot, which surfaces as absent.
	ok, err := s.users.ConsumeEmailOTP(ctx, user.ID, code)
	if err != nil {
		return nil, fmt.Errorf("consume email otp: %w", err)
	}
	if !ok {
		return nil, domain.ErrOTPAbsent
	}

	user.IsVerified = true
	user.EmailOTP = nil

	access, refresh, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Msg("email verified")
	return &ports.AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// ResendOTP replaces the email-verification code for a pending account and
// redelivers it.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return domain.ErrAlreadyVerified
	}

	slot, err := s.otp.Issue()
	if err != nil {
		return err
	}
	if err := s.users.SetEmailOTP(ctx, email, slot); err != nil {
		return fmt.Errorf("store email otp: %w", err)
	}
	if err := s.mailer.SendOTP(ctx, email, "Email Verification OTP", slot.Code); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

// Login authenticates by email and password. A missing account and a wrong
// password return the identical error so responses carry no enumeration
// signal.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsVerified {
		return nil, domain.ErrNotVerified
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, refresh, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login")
	return &ports.AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// ChangePassword rewrites the password hash after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// ForgotPassword issues a reset code, overwriting any prior unconsumed one,
// and delivers it.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		return err
	}

	slot, err := s.otp.Issue()
	if err != nil {
		return err
	}
	if err := s.users.SetResetOTP(ctx, email, slot); err != nil {
		return fmt.Errorf("store reset otp: %w", err)
	}
	if err := s.mailer.SendOTP(ctx, email, "Password Reset OTP", slot.Code); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// VerifyResetOTP checks the reset code without consuming it; the same code
// must remain valid for the subsequent ResetPassword call.
func (s *AuthService) VerifyResetOTP(ctx context.Context, email, code string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.otp.Validate(user.ResetOTP, code, time.Now().UTC())
}

// ResetPassword re-validates the reset code, rewrites the password hash and
// clears the slot in one conditional update. At this boundary every OTP
// failure collapses into the single invalid-or-expired error.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := s.otp.Validate(user.ResetOTP, code, time.Now().UTC()); err != nil {
		return domain.ErrOTPInvalidOrExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ok, err := s.users.ConsumeResetOTP(ctx, user.ID, code, string(hash))
	if err != nil {
		return fmt.Errorf("consume reset otp: %w", err)
	}
	if !ok {
		return domain.ErrOTPInvalidOrExpired
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}
