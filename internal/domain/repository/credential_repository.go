// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"coursehub/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for credential persistence.
var (
	// ErrUserNotFound is returned when no matching non-deleted user exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicatePhone is returned when the phone number is already taken
	// by a non-deleted user.
	ErrDuplicatePhone = errors.New("phone number already registered")
)

// CredentialRepository is the Credential Store contract: the durable record of
// user identity, phone, hashed PIN, bound devices, role and status. All lookup
// methods consider only non-deleted users; a soft-deleted user's phone may be
// reclaimed by a new registration.
type CredentialRepository interface {
	// Create persists a new user. It fails with ErrDuplicatePhone when the
	// phone is already bound to a non-deleted user.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their unique ID, deleted users included.
	// The session refresh path needs the record to decide deletedness itself.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByPhone retrieves a non-deleted user by phone number.
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)

	// FindByDevice retrieves a non-deleted user whose device set contains
	// the given device identifier.
	FindByDevice(ctx context.Context, deviceID string) (*entity.User, error)

	// List returns all non-deleted users.
	List(ctx context.Context) ([]*entity.User, error)

	// UpdateLastLogin records a successful login time.
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// AddDevice binds a device identifier to the user. Adding a device that
	// is already bound is a no-op.
	AddDevice(ctx context.Context, id uuid.UUID, deviceID string) error

	// UpdatePinHash atomically replaces the stored PIN hash.
	UpdatePinHash(ctx context.Context, id uuid.UUID, pinHash string) error

	// UpdateRole changes the user's role.
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) error

	// UpdateStatus changes the user's status. The DELETED terminal rule is
	// enforced by the use case layer before calling this.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error

	// SoftDelete marks the user DELETED and stamps deletedAt. The record is
	// never physically removed.
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
}
