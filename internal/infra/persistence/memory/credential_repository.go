// Package memory provides an in-memory credential store. It backs the test
// suites and keeps the same contract semantics as the PostgreSQL
// implementation: phone uniqueness among non-deleted users, device set
// membership and soft deletion.
package memory

import (
	"context"
	"sync"
	"time"

	"coursehub/internal/domain/entity"
	"coursehub/internal/domain/repository"

	"github.com/google/uuid"
)

// CredentialRepository is a mutex-guarded map of users keyed by ID. The zero
// value is not usable; construct it with NewCredentialRepository.
type CredentialRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
}

// NewCredentialRepository creates an empty in-memory credential store.
func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{
		users: make(map[uuid.UUID]*entity.User),
	}
}

// Create stores a new user, assigning an ID and creation time when unset.
func (repo *CredentialRepository) Create(_ context.Context, user *entity.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.users {
		if existing.Phone == user.Phone && !existing.IsDeleted() {
			return repository.ErrDuplicatePhone
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	repo.users[user.ID] = cloneUser(user)

	return nil
}

// FindByID returns a user by ID, deleted users included.
func (repo *CredentialRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

// FindByPhone returns a non-deleted user by phone number.
func (repo *CredentialRepository) FindByPhone(_ context.Context, phone string) (*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, user := range repo.users {
		if user.Phone == phone && !user.IsDeleted() {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// FindByDevice returns a non-deleted user whose device set contains the identifier.
func (repo *CredentialRepository) FindByDevice(_ context.Context, deviceID string) (*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, user := range repo.users {
		if !user.IsDeleted() && user.HasDevice(deviceID) {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// List returns all non-deleted users.
func (repo *CredentialRepository) List(_ context.Context) ([]*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	users := make([]*entity.User, 0, len(repo.users))
	for _, user := range repo.users {
		if !user.IsDeleted() {
			users = append(users, cloneUser(user))
		}
	}

	return users, nil
}

// UpdateLastLogin records a successful login time.
func (repo *CredentialRepository) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	return repo.mutate(id, func(user *entity.User) {
		loginAt := at
		user.LastLogin = &loginAt
	})
}

// AddDevice binds a device identifier to the user's device set.
func (repo *CredentialRepository) AddDevice(_ context.Context, id uuid.UUID, deviceID string) error {
	return repo.mutate(id, func(user *entity.User) {
		user.AddDevice(deviceID)
	})
}

// UpdatePinHash replaces the stored PIN hash.
func (repo *CredentialRepository) UpdatePinHash(_ context.Context, id uuid.UUID, pinHash string) error {
	return repo.mutate(id, func(user *entity.User) {
		user.PinHash = pinHash
	})
}

// UpdateRole changes the user's role.
func (repo *CredentialRepository) UpdateRole(_ context.Context, id uuid.UUID, role entity.Role) error {
	return repo.mutate(id, func(user *entity.User) {
		user.Role = role
	})
}

// UpdateStatus changes the user's status.
func (repo *CredentialRepository) UpdateStatus(_ context.Context, id uuid.UUID, status entity.UserStatus) error {
	return repo.mutate(id, func(user *entity.User) {
		user.Status = status
	})
}

// SoftDelete marks the user DELETED and stamps the deletion time.
func (repo *CredentialRepository) SoftDelete(_ context.Context, id uuid.UUID, at time.Time) error {
	return repo.mutate(id, func(user *entity.User) {
		deletedAt := at
		user.Status = entity.StatusDeleted
		user.DeletedAt = &deletedAt
	})
}

func (repo *CredentialRepository) mutate(id uuid.UUID, fn func(*entity.User)) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	fn(user)

	return nil
}

func cloneUser(user *entity.User) *entity.User {
	cloned := *user
	cloned.Devices = append([]string(nil), user.Devices...)
	if user.LastLogin != nil {
		lastLogin := *user.LastLogin
		cloned.LastLogin = &lastLogin
	}
	if user.DeletedAt != nil {
		deletedAt := *user.DeletedAt
		cloned.DeletedAt = &deletedAt
	}

	return &cloned
}

// TransactionManager is the in-memory counterpart of the GORM transaction
// manager. Operations apply directly; there is no rollback. That is enough
// for the use case tests, which only assert on committed outcomes.
type TransactionManager struct {
	repo *CredentialRepository
}

// NewTransactionManager wraps an in-memory repository in a pass-through
// transaction manager.
func NewTransactionManager(repo *CredentialRepository) *TransactionManager {
	return &TransactionManager{repo: repo}
}

// Execute runs fn against a factory bound to the underlying store.
func (tm *TransactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(&repositoryFactory{repo: tm.repo})
}

type repositoryFactory struct {
	repo *CredentialRepository
}

func (f *repositoryFactory) CredentialRepo() repository.CredentialRepository {
	return f.repo
}
