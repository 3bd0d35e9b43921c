// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"coursehub/config"
	domainerrors "coursehub/internal/domain/errors"
	"coursehub/internal/domain/service"
)

// pinPattern matches exactly four decimal digits.
var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// bcryptHasher is a concrete implementation of the PinHasher interface using bcrypt.
// bcrypt handles per-hash salt generation, so every Hash call yields a fresh salt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher. The cost factor comes
// from configuration and is never below bcrypt's cost 10.
func NewBcryptHasher(cfg *config.Config) service.PinHasher {
	cost := 10
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost > cost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// NewBcryptHasherWithCost builds a hasher with an explicit cost. Intended for
// tests, where a lower cost keeps hashing fast.
func NewBcryptHasherWithCost(cost int) service.PinHasher {
	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext PIN using bcrypt.
func (h *bcryptHasher) Hash(pin string) (string, error) {
	if err := h.ValidateFormat(pin); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), h.cost)

	return string(bytes), err
}

// Check compares a plaintext PIN with a bcrypt hash.
// bcrypt's comparison is constant-time over the derived key.
func (h *bcryptHasher) Check(pin, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
	// err is nil if the PIN and hash match.
	return err == nil
}

// ValidateFormat checks that the PIN is exactly four decimal digits.
func (h *bcryptHasher) ValidateFormat(pin string) error {
	if !pinPattern.MatchString(pin) {
		return domainerrors.ErrInvalidPinFormat
	}

	return nil
}
