package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/inkwell/publishing-api/internal/core/domain"
)

const (
	otpDigits = 6
	otpTTL    = 10 * time.Minute
)

var otpMax = big.NewInt(1_000_000)

// OTPManager generates and checks one-time numeric codes. It is stateless:
// persistence of the issued slot and clearing after a successful check are
// the caller's responsibility.
type OTPManager struct {
	ttl time.Duration
}

func NewOTPManager() *OTPManager {
	return &OTPManager{ttl: otpTTL}
}

// Issue returns a fresh 6-digit code drawn uniformly from [000000, 999999]
// with an absolute expiry of now + 10 minutes.
func (m *OTPManager) Issue() (domain.OTPSlot, error) {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		return domain.OTPSlot{}, fmt.Errorf("generate otp: %w", err)
	}
	return domain.OTPSlot{
		Code:   fmt.Sprintf("%06d", n.Int64()),
		Expiry: time.Now().UTC().Add(m.ttl),
	}, nil
}

// Validate checks a submitted code against the stored slot at the given
// instant. Failures stay distinguishable: ErrOTPAbsent when no code is on
// record, ErrOTPMismatch on a wrong code, ErrOTPExpired when the code
// matches but its expiry has passed. Expiry is evaluated lazily here; there
// is no background sweep.
func (m *OTPManager) Validate(stored *domain.OTPSlot, submitted string, now time.Time) error {
	if stored == nil || stored.Code == "" {
		return domain.ErrOTPAbsent
	}
	if stored.Code != submitted {
		return domain.ErrOTPMismatch
	}
	if now.After(stored.Expiry) {
		return domain.ErrOTPExpired
	}
	return nil
}
