package ports

import (
	"time"

	"github.com/inkwell/publishing-api/internal/core/domain"
)

// TokenKind selects which signing secret a token is bound to. Access and
// refresh tokens use independent secrets so compromising one kind cannot
// forge the other.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// TokenClaims is the decoded payload of a verified token.
type TokenClaims struct {
	UserID    string
	ExpiresAt time.Time
}

// TokenIssuer creates and validates signed, time-bound credentials.
//
// There is no revocation list: a token stays valid until its embedded expiry
// regardless of later account changes (password change, deletion). This is a
// documented property of the design, not an oversight.
type TokenIssuer interface {
	IssuePair(user *domain.User) (accessToken, refreshToken string, err error)
	Verify(token string, kind TokenKind) (*TokenClaims, error)
}
