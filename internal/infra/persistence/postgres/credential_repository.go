// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"coursehub/internal/domain/entity"
	domainerrors "coursehub/internal/domain/errors"
	"coursehub/internal/domain/repository"
	"coursehub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// credentialRepository implements the domain.CredentialRepository interface using GORM.
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// Create persists a new user. Phone uniqueness is checked among non-deleted
// rows only, so a soft-deleted account's phone can be reclaimed.
func (repo *credentialRepository) Create(ctx context.Context, user *entity.User) error {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("phone = ? AND deleted_at IS NULL", user.Phone).
		Count(&count).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to check phone uniqueness")
	}
	if count > 0 {
		return repository.ErrDuplicatePhone
	}

	userM := fromUserDomain(user)
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicatePhone
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Carry back the generated ID and timestamps.
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt

	return nil
}

// FindByID retrieves a user by ID, deleted rows included. The refresh path
// inspects the record's status itself.
func (repo *credentialRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByPhone retrieves a non-deleted user by phone number.
func (repo *credentialRepository) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("phone = ? AND deleted_at IS NULL", phone).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by phone")
	}

	return toUserDomain(&userM), nil
}

// FindByDevice retrieves a non-deleted user whose device set contains the given identifier.
func (repo *credentialRepository) FindByDevice(ctx context.Context, deviceID string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where(datatypes.JSONArrayQuery("devices").Contains(deviceID)).
		Where("deleted_at IS NULL").
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by device")
	}

	return toUserDomain(&userM), nil
}

// List returns all non-deleted users ordered by creation time.
func (repo *credentialRepository) List(ctx context.Context) ([]*entity.User, error) {
	var models []model.UserModel
	err := repo.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		users = append(users, toUserDomain(&models[i]))
	}

	return users, nil
}

// UpdateLastLogin records a successful login time.
func (repo *credentialRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return repo.updateColumns(ctx, id, map[string]any{"last_login": at})
}

// AddDevice binds a device identifier to the user's device set. Binding an
// already present device is a no-op.
func (repo *credentialRepository) AddDevice(ctx context.Context, id uuid.UUID, deviceID string) error {
	user, err := repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !user.AddDevice(deviceID) {
		return nil
	}

	return repo.updateColumns(ctx, id, map[string]any{
		"devices": datatypes.NewJSONSlice(user.Devices),
	})
}

// UpdatePinHash atomically replaces the stored PIN hash.
func (repo *credentialRepository) UpdatePinHash(ctx context.Context, id uuid.UUID, pinHash string) error {
	return repo.updateColumns(ctx, id, map[string]any{"pin_hash": pinHash})
}

// UpdateRole changes the user's role.
func (repo *credentialRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) error {
	return repo.updateColumns(ctx, id, map[string]any{"role": string(role)})
}

// UpdateStatus changes the user's status.
func (repo *credentialRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error {
	return repo.updateColumns(ctx, id, map[string]any{"status": string(status)})
}

// SoftDelete marks the user DELETED and stamps deleted_at. The row stays.
func (repo *credentialRepository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	return repo.updateColumns(ctx, id, map[string]any{
		"status":     string(entity.StatusDeleted),
		"deleted_at": at,
	})
}

// updateColumns applies a partial update to a single non-deleted user row.
func (repo *credentialRepository) updateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Name:         data.Name,
		Phone:        data.Phone,
		PinHash:      data.PinHash,
		Devices:      append([]string(nil), data.Devices...),
		Role:         entity.Role(data.Role),
		Status:       entity.UserStatus(data.Status),
		ProfileImage: data.ProfileImage,
		CreatedAt:    data.CreatedAt,
		LastLogin:    data.LastLogin,
		DeletedAt:    data.DeletedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Name:         data.Name,
		Phone:        data.Phone,
		PinHash:      data.PinHash,
		Devices:      datatypes.NewJSONSlice(data.Devices),
		Role:         string(data.Role),
		Status:       string(data.Status),
		ProfileImage: data.ProfileImage,
		LastLogin:    data.LastLogin,
		DeletedAt:    data.DeletedAt,
	}
}
