package impl

import (
	"context"
	"log/slog"

	deliverycontext "coursehub/internal/delivery/context"
	domainerrors "coursehub/internal/domain/errors"
	"coursehub/internal/domain/repository"
	"coursehub/internal/domain/service"
	"coursehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// pinService implements the PinUsecase interface.
type pinService struct {
	credentialRepo repository.CredentialRepository
	hasher         service.PinHasher
	logger         *slog.Logger
}

// PinServiceParams holds dependencies for pinService, injected by Fx.
type PinServiceParams struct {
	fx.In

	CredentialRepo repository.CredentialRepository
	Hasher         service.PinHasher
	Logger         *slog.Logger
}

// NewPinService is the constructor for pinService.
func NewPinService(params PinServiceParams) usecase.PinUsecase {
	return &pinService{
		credentialRepo: params.CredentialRepo,
		hasher:         params.Hasher,
		logger:         params.Logger,
	}
}

func (srv *pinService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// VerifyPin compares the plaintext PIN against the stored hash.
// A mismatch is reported as false, not as an error.
func (srv *pinService) VerifyPin(ctx context.Context, userID uuid.UUID, pin string) (bool, error) {
	if err := srv.hasher.ValidateFormat(pin); err != nil {
		return false, domainerrors.ErrInvalidPinFormat.WrapMessage("malformed pin")
	}

	user, err := srv.credentialRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, domainerrors.ErrUserNotFound.WrapMessage("user not found for pin verification")
		}

		return false, errors.Wrap(err, "failed to load user for pin verification")
	}
	if user.IsDeleted() {
		return false, domainerrors.ErrUserNotFound.WrapMessage("account is deleted")
	}

	return srv.hasher.Check(pin, user.PinHash), nil
}

// ChangePin hashes the new PIN with a fresh salt and replaces the stored hash
// in a single update. The previous hash stays untouched on any failure.
func (srv *pinService) ChangePin(ctx context.Context, userID uuid.UUID, newPin string) error {
	user, err := srv.credentialRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("user not found for pin change")
		}

		return errors.Wrap(err, "failed to load user for pin change")
	}
	if user.IsDeleted() {
		return domainerrors.ErrUserNotFound.WrapMessage("account is deleted")
	}

	newHash, err := srv.hasher.Hash(newPin)
	if err != nil {
		srv.log(ctx).Warn("PIN hashing failed during pin change", slog.Any("userID", userID), slog.Any("error", err))

		return err
	}

	if err := srv.credentialRepo.UpdatePinHash(ctx, userID, newHash); err != nil {
		return errors.Wrap(err, "failed to update pin hash")
	}

	srv.log(ctx).Info("PIN changed", slog.Any("userID", userID))

	return nil
}
