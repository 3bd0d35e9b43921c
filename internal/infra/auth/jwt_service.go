// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"coursehub/config"
	"coursehub/internal/domain/entity"
	"coursehub/internal/domain/service"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Both token classes are signed with the same shared HMAC secret and are told
// apart by the "type" claim.
type jwtService struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time // injectable clock, time.Now outside tests
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	accessTTL := 15 * time.Minute
	refreshTTL := 7 * 24 * time.Hour
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return &jwtService{
		secret:     cfg.SecretKey.Token,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// IssueAccessToken creates a short-lived token carrying the subject ID and role.
func (s *jwtService) IssueAccessToken(userID uuid.UUID, role entity.Role) (string, error) {
	return s.issueToken(userID, role, tokenTypeAccess, s.accessTTL)
}

// IssueRefreshToken creates a long-lived token carrying only the subject ID.
func (s *jwtService) IssueRefreshToken(userID uuid.UUID) (string, error) {
	return s.issueToken(userID, "", tokenTypeRefresh, s.refreshTTL)
}

// VerifyAccessToken checks signature, expiry and token type of an access token.
func (s *jwtService) VerifyAccessToken(token string) (*service.Claims, error) {
	return s.verifyToken(token, tokenTypeAccess)
}

// VerifyRefreshToken checks signature, expiry and token type of a refresh token.
func (s *jwtService) VerifyRefreshToken(token string) (*service.Claims, error) {
	return s.verifyToken(token, tokenTypeRefresh)
}

// AccessTokenTTL returns the configured access token lifetime.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

// RefreshTokenTTL returns the configured refresh token lifetime.
func (s *jwtService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

// issueToken is a private helper to create a JWT with specific claims.
func (s *jwtService) issueToken(userID uuid.UUID, role entity.Role, tokenType string, ttl time.Duration) (string, error) {
	issuedAt := s.now()
	claims := &service.Claims{
		Role: role,
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// verifyToken parses and validates a token string. Every failure mode
// (malformed input, bad signature, expiry, wrong token type) collapses into
// service.ErrTokenInvalid so callers can fall through to the refresh path
// without exception-driven control flow.
func (s *jwtService) verifyToken(tokenString, expectedType string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			// Ensure the signing method is what we expect.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return []byte(s.secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, errors.Wrap(service.ErrTokenInvalid, "token verification failed")
	}

	if claims.Type != expectedType {
		return nil, errors.Wrap(service.ErrTokenInvalid, "unexpected token type")
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenInvalid, "malformed subject claim")
	}
	claims.UserID = subject

	return claims, nil
}
