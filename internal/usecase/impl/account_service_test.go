package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/internal/domain/entity"
	domainerrors "coursehub/internal/domain/errors"
	"coursehub/internal/infra/persistence/memory"
	"coursehub/internal/usecase"
)

type accountFixture struct {
	repo *memory.CredentialRepository
	svc  usecase.AccountUsecase
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	repo := memory.NewCredentialRepository()
	svc := NewAccountService(AccountServiceParams{
		CredentialRepo: repo,
		Logger:         slog.New(slog.DiscardHandler),
	})

	return &accountFixture{repo: repo, svc: svc}
}

func (f *accountFixture) seedUser(t *testing.T, phone string) *entity.User {
	t.Helper()

	user := &entity.User{
		Name:    "Aziza Karimova",
		Phone:   phone,
		PinHash: "$2a$10$fakehash",
		Role:    entity.RoleUser,
		Status:  entity.StatusActive,
	}
	require.NoError(t, f.repo.Create(context.Background(), user))

	return user
}

func TestAccountService_GetProfile(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	user := f.seedUser(t, "+998901234567")

	got, err := f.svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Phone, got.Phone)
}

func TestAccountService_GetProfile_DeletedUser(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	user := f.seedUser(t, "+998901234567")
	require.NoError(t, f.repo.SoftDelete(context.Background(), user.ID, time.Now()))

	_, err := f.svc.GetProfile(context.Background(), user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_ListUsers(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	f.seedUser(t, "+998901111111")
	gone := f.seedUser(t, "+998902222222")
	require.NoError(t, f.repo.SoftDelete(context.Background(), gone.ID, time.Now()))

	users, err := f.svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAccountService_UpdateRole(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	user := f.seedUser(t, "+998901234567")

	require.NoError(t, f.svc.UpdateRole(context.Background(), user.ID, entity.RoleAdmin))

	stored, err := f.repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, stored.Role)
}

func TestAccountService_UpdateRole_UnknownRole(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	user := f.seedUser(t, "+998901234567")

	err := f.svc.UpdateRole(context.Background(), user.ID, entity.Role("SUPERVISOR"))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAccountService_UpdateStatus(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	user := f.seedUser(t, "+998901234567")

	require.NoError(t, f.svc.UpdateStatus(context.Background(), user.ID, entity.StatusSuspended))

	stored, err := f.repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSuspended, stored.Status)
}

func TestAccountService_UpdateStatus_DeletedIsTerminal(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	user := f.seedUser(t, "+998901234567")
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteAccount(ctx, user.ID))

	// No status change can resurrect a deleted account.
	for _, status := range []entity.UserStatus{
		entity.StatusActive, entity.StatusPending, entity.StatusBanned,
	} {
		err := f.svc.UpdateStatus(ctx, user.ID, status)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition, "status %s", status)
	}
}

func TestAccountService_DeleteAccount(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	user := f.seedUser(t, "+998901234567")
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteAccount(ctx, user.ID))

	stored, err := f.repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted())
	assert.NotNil(t, stored.DeletedAt)

	// Deleting twice is rejected.
	err = f.svc.DeleteAccount(ctx, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)
}

func TestAccountService_UnknownUser(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	ctx := context.Background()
	unknown := uuid.New()

	_, err := f.svc.GetProfile(ctx, unknown)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	err = f.svc.UpdateRole(ctx, unknown, entity.RoleAdmin)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	err = f.svc.DeleteAccount(ctx, unknown)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
