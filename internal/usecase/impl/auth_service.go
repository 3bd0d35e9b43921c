// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "coursehub/internal/delivery/context"
	"coursehub/internal/domain/entity"
	domainerrors "coursehub/internal/domain/errors"
	"coursehub/internal/domain/repository"
	"coursehub/internal/domain/service"
	"coursehub/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	hasher       service.PinHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PinHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account: unique phone among non-deleted users,
// freshly hashed PIN, role USER, status ACTIVE, the registering device bound.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("phone", input.Phone))

	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > 50 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "name must be 1-50 characters")
	}

	pinHash, err := srv.hasher.Hash(input.Pin)
	if err != nil {
		srv.log(ctx).Warn("PIN hashing failed during registration", slog.Any("error", err))

		return nil, err
	}

	newUser := &entity.User{
		Name:         name,
		Phone:        input.Phone,
		PinHash:      pinHash,
		Devices:      []string{input.DeviceID},
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
		ProfileImage: input.ProfileImage,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		credentialRepo := repoFactory.CredentialRepo()

		if err := credentialRepo.Create(ctx, newUser); err != nil {
			if errors.Is(err, repository.ErrDuplicatePhone) {
				return domainerrors.ErrDuplicatePhone.WrapMessage("phone already registered")
			}

			return errors.Wrap(err, "failed to create user during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("phone", input.Phone), slog.Any("error", err))

		return nil, err
	}

	output, err := srv.buildAuthOutput(newUser)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return output, nil
}

// Login authenticates by phone or by a previously bound device identifier,
// then records the login time and binds the device in one transaction.
// Nothing is mutated when authentication fails.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting login", slog.String("phone", input.Phone))

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		credentialRepo := repoFactory.CredentialRepo()

		found, err := srv.findAccount(ctx, credentialRepo, input)
		if err != nil {
			return err
		}

		if !srv.hasher.Check(input.Pin, found.PinHash) {
			return domainerrors.ErrInvalidPin.WrapMessage("pin mismatch during login")
		}

		// Both writes belong to the same transaction; a partial login
		// record would be worse than a failed one.
		now := time.Now()
		if err := credentialRepo.UpdateLastLogin(ctx, found.ID, now); err != nil {
			return errors.Wrap(err, "failed to record login time")
		}
		if input.DeviceID != "" {
			if err := credentialRepo.AddDevice(ctx, found.ID, input.DeviceID); err != nil {
				return errors.Wrap(err, "failed to bind device")
			}
			found.AddDevice(input.DeviceID)
		}
		found.LastLogin = &now

		user = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("phone", input.Phone), slog.Any("error", err))

		return nil, err
	}

	output, err := srv.buildAuthOutput(user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Login completed", slog.Any("userID", user.ID))

	return output, nil
}

// findAccount resolves the login identifier by phone or by bound-device
// membership. The two predicates are independent, so a phone miss falls
// through to the device lookup; the lookup fails only when both miss.
func (srv *authService) findAccount(ctx context.Context, credentialRepo repository.CredentialRepository, input usecase.LoginInput) (*entity.User, error) {
	if input.Phone == "" && input.DeviceID == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "phone or device identifier required")
	}

	if input.Phone != "" {
		user, err := credentialRepo.FindByPhone(ctx, input.Phone)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(err, "failed to find user by phone")
		}
	}

	if input.DeviceID != "" {
		user, err := credentialRepo.FindByDevice(ctx, input.DeviceID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(err, "failed to find user by device")
		}
	}

	return nil, domainerrors.ErrLoginUserNotFound.WrapMessage("no account for the supplied login identifiers")
}

// buildAuthOutput issues the dual token pair for a freshly authenticated user.
func (srv *authService) buildAuthOutput(user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	return &usecase.AuthOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
