package service

import (
	"errors"
	"time"

	"coursehub/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenInvalid is the sentinel for any token verification failure:
// expired, malformed, wrong type, or bad signature. Callers branch on it
// (e.g. to fall through to the refresh path) instead of inspecting
// library-specific errors.
var ErrTokenInvalid = errors.New("token is invalid or expired")

// Claims defines the custom claims carried by the JWT tokens.
// UserID is derived from the registered "sub" claim after verification.
type Claims struct {
	UserID uuid.UUID   `json:"-"`
	Role   entity.Role `json:"role,omitempty"`
	Type   string      `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying the
// access/refresh token pair. Tokens are stateless bearer credentials:
// validity is purely a function of signature and expiry, there is no
// server-side session table.
type TokenService interface {
	// IssueAccessToken creates a short-lived token carrying the subject ID and role.
	IssueAccessToken(userID uuid.UUID, role entity.Role) (string, error)

	// IssueRefreshToken creates a long-lived token carrying only the subject ID.
	IssueRefreshToken(userID uuid.UUID) (string, error)

	// VerifyAccessToken checks signature, expiry and token type.
	// Any failure is reported as ErrTokenInvalid.
	VerifyAccessToken(token string) (*Claims, error)

	// VerifyRefreshToken checks signature, expiry and token type.
	// Any failure is reported as ErrTokenInvalid.
	VerifyRefreshToken(token string) (*Claims, error)

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured refresh token lifetime.
	RefreshTokenTTL() time.Duration
}
