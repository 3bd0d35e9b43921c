package usecase

import (
	"context"

	"coursehub/internal/domain/entity"

	"github.com/google/uuid"
)

// AccountUsecase defines profile access and administrative user management.
type AccountUsecase interface {
	// GetProfile returns the non-deleted user behind the session.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// ListUsers returns all non-deleted users.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// UpdateRole changes a user's role.
	UpdateRole(ctx context.Context, userID uuid.UUID, role entity.Role) error

	// UpdateStatus changes a user's status. Transitions away from DELETED
	// are rejected.
	UpdateStatus(ctx context.Context, userID uuid.UUID, status entity.UserStatus) error

	// DeleteAccount soft-deletes a user. The record is retained.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}
