package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell/publishing-api/internal/core/domain"
	"github.com/inkwell/publishing-api/internal/core/ports"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// TokenIssuer signs and verifies HS256 token pairs. Each kind uses its own
// secret, so an access token never verifies against the refresh secret and
// vice versa.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewTokenIssuer(accessSecret, refreshSecret string) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

// IssuePair creates a short-lived access token and a long-lived refresh
// token for the user. Both carry the user id as subject and an expiry.
func (t *TokenIssuer) IssuePair(user *domain.User) (string, string, error) {
	now := time.Now().UTC()

	access, err := t.sign(user.ID, now, accessTokenTTL, t.accessSecret)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := t.sign(user.ID, now, refreshTokenTTL, t.refreshSecret)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return access, refresh, nil
}

// Verify decodes and validates a token of the given kind. It returns
// domain.ErrTokenExpired for an expired but otherwise well-formed token and
// domain.ErrInvalidToken for any structural or signature failure.
//
// There is no revocation: outstanding tokens survive password changes and
// account deletion until their embedded expiry.
func (t *TokenIssuer) Verify(token string, kind ports.TokenKind) (*ports.TokenClaims, error) {
	secret := t.accessSecret
	if kind == ports.TokenRefresh {
		secret = t.refreshSecret
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(tk *jwt.Token) (interface{}, error) {
		if tk.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !parsed.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenClaims{
		UserID:    claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (t *TokenIssuer) sign(userID string, now time.Time, ttl time.Duration, secret []byte) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
