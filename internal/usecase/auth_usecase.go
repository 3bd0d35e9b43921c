// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"coursehub/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name         string
	Phone        string
	Pin          string
	DeviceID     string
	ProfileImage string
}

// LoginInput defines the data required to log in. Either Phone or DeviceID
// identifies the account; Phone wins when both are present.
type LoginInput struct {
	Phone    string
	DeviceID string
	Pin      string
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user together with a fresh token pair.
// The delivery layer turns the tokens into HTTP-only cookies.
type AuthOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// AuthUsecase defines the interface for registration and login.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)
}
