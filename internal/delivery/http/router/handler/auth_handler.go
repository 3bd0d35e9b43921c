// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"coursehub/internal/delivery/http/cookie"
	"coursehub/internal/delivery/http/middleware"
	"coursehub/internal/delivery/http/response"
	domainerrors "coursehub/internal/domain/errors"
	"coursehub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for registration, login, logout and PIN management.
type AuthHandler struct {
	authUC  usecase.AuthUsecase
	pinUC   usecase.PinUsecase
	cookies *cookie.Manager
	logger  *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(authUC usecase.AuthUsecase, pinUC usecase.PinUsecase, cookies *cookie.Manager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUC:  authUC,
		pinUC:   pinUC,
		cookies: cookies,
		logger:  logger,
	}
}

type registerRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=50"`
	Phone        string `json:"phone" validate:"required,phone"`
	Pin          string `json:"pin" validate:"required,len=4,numeric"`
	DeviceID     string `json:"deviceId" validate:"required"`
	ProfileImage string `json:"profileImage" validate:"omitempty,url"`
}

type loginRequest struct {
	Phone    string `json:"phone" validate:"omitempty,phone"`
	DeviceID string `json:"deviceId" validate:"omitempty"`
	Pin      string `json:"pin" validate:"required,len=4,numeric"`
}

type verifyPinRequest struct {
	Pin string `json:"pin" validate:"required"`
}

type updatePinRequest struct {
	NewPin string `json:"newPin" validate:"required,len=4,numeric"`
}

// Register handles new account creation. On success both auth cookies are set.
func (h *AuthHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.Register(c.Request().Context(), usecase.RegisterInput{
		Name:         input.Name,
		Phone:        input.Phone,
		Pin:          input.Pin,
		DeviceID:     input.DeviceID,
		ProfileImage: input.ProfileImage,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Tokens travel only as cookies, never in the body.
	h.cookies.SetAuthCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusCreated, toUserResponse(output.User), "User registered successfully")
}

// Login authenticates by phone or a bound device plus PIN.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Phone:    input.Phone,
		DeviceID: input.DeviceID,
		Pin:      input.Pin,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.SetAuthCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, toUserResponse(output.User), "Login successful")
}

// Logout clears both auth cookies. The stateless tokens themselves simply
// age out; there is nothing to revoke server-side.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.ClearAuthCookies(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// VerifyPin checks the caller's PIN and reports the outcome without ever
// treating a mismatch as an error.
func (h *AuthHandler) VerifyPin(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	var input verifyPinRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid pin input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	isValid, err := h.pinUC.VerifyPin(c.Request().Context(), userID, input.Pin)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"isValid": isValid}, "")
}

// UpdatePin replaces the caller's PIN with a freshly hashed one.
func (h *AuthHandler) UpdatePin(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	var input updatePinRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid pin input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.pinUC.ChangePin(c.Request().Context(), userID, input.NewPin); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "PIN updated successfully")
}
