package usecase

import (
	"context"

	"github.com/google/uuid"
)

// PinUsecase defines PIN verification and replacement for an authenticated user.
type PinUsecase interface {
	// VerifyPin checks the plaintext PIN against the stored hash. A mismatch
	// is a false result, not an error.
	VerifyPin(ctx context.Context, userID uuid.UUID, pin string) (bool, error)

	// ChangePin replaces the stored PIN hash with a freshly salted hash of
	// the new PIN in a single atomic update.
	ChangePin(ctx context.Context, userID uuid.UUID, newPin string) error
}
