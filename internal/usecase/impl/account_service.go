package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "coursehub/internal/delivery/context"
	"coursehub/internal/domain/entity"
	domainerrors "coursehub/internal/domain/errors"
	"coursehub/internal/domain/repository"
	"coursehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	credentialRepo repository.CredentialRepository
	logger         *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	CredentialRepo repository.CredentialRepository
	Logger         *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		credentialRepo: params.CredentialRepo,
		logger:         params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the non-deleted user behind the session.
func (srv *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.loadActiveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ListUsers returns all non-deleted users.
func (srv *accountService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.credentialRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// UpdateRole changes a user's role.
func (srv *accountService) UpdateRole(ctx context.Context, userID uuid.UUID, role entity.Role) error {
	if !role.IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	if _, err := srv.loadActiveUser(ctx, userID); err != nil {
		return err
	}

	if err := srv.credentialRepo.UpdateRole(ctx, userID, role); err != nil {
		return errors.Wrap(err, "failed to update role")
	}

	srv.log(ctx).Info("Role updated", slog.Any("userID", userID), slog.String("role", role.String()))

	return nil
}

// UpdateStatus changes a user's status. DELETED is terminal: a deleted
// account never transitions anywhere else.
func (srv *accountService) UpdateStatus(ctx context.Context, userID uuid.UUID, status entity.UserStatus) error {
	if !status.IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown status")
	}

	user, err := srv.credentialRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("user not found for status update")
		}

		return errors.Wrap(err, "failed to load user for status update")
	}

	if !user.Status.CanTransitionTo(status) {
		return domainerrors.ErrInvalidStatusTransition.WrapMessage("status transition rejected")
	}

	if err := srv.credentialRepo.UpdateStatus(ctx, userID, status); err != nil {
		return errors.Wrap(err, "failed to update status")
	}

	srv.log(ctx).Info("Status updated", slog.Any("userID", userID), slog.String("status", status.String()))

	return nil
}

// DeleteAccount soft-deletes a user: status DELETED plus a deletion stamp.
// The record stays in the store and its phone becomes reclaimable.
func (srv *accountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := srv.credentialRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("user not found for deletion")
		}

		return errors.Wrap(err, "failed to load user for deletion")
	}
	if user.IsDeleted() {
		return domainerrors.ErrInvalidStatusTransition.WrapMessage("account already deleted")
	}

	if err := srv.credentialRepo.SoftDelete(ctx, userID, time.Now()); err != nil {
		return errors.Wrap(err, "failed to soft delete user")
	}

	srv.log(ctx).Info("Account soft-deleted", slog.Any("userID", userID))

	return nil
}

func (srv *accountService) loadActiveUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.credentialRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}
	if user.IsDeleted() {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("account is deleted")
	}

	return user, nil
}
