package handler

import (
	"log/slog"
	"net/http"
	"time"

	"coursehub/internal/delivery/http/middleware"
	"coursehub/internal/delivery/http/response"
	"coursehub/internal/domain/entity"
	domainerrors "coursehub/internal/domain/errors"
	"coursehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for profile and admin user management handlers.
type UserHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(accountUC usecase.AccountUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		accountUC: accountUC,
		logger:    logger,
	}
}

// userResponse is the outward shape of a user. The PIN hash never leaves the service.
type userResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Role         string     `json:"role"`
	Status       string     `json:"status"`
	ProfileImage string     `json:"profileImage,omitempty"`
	Devices      []string   `json:"devices"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

func toUserResponse(user *entity.User) *userResponse {
	return &userResponse{
		ID:           user.ID,
		Name:         user.Name,
		Phone:        user.Phone,
		Role:         user.Role.String(),
		Status:       user.Status.String(),
		ProfileImage: user.ProfileImage,
		Devices:      user.Devices,
		CreatedAt:    user.CreatedAt,
		LastLogin:    user.LastLogin,
	}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN OWNER"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING ACTIVE INACTIVE SUSPENDED BANNED DELETED"`
}

// Me returns the profile of the authenticated user.
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	user, err := h.accountUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "")
}

// List returns every non-deleted user. Requires the MANAGE permission.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.accountUC.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	result := make([]*userResponse, 0, len(users))
	for _, user := range users {
		result = append(result, toUserResponse(user))
	}

	return response.Success(c, http.StatusOK, result, "")
}

// UpdateRole changes a user's role. Requires the OWN permission.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user id")
	}

	var input updateRoleRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.accountUC.UpdateRole(c.Request().Context(), targetID, entity.Role(input.Role)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Role updated successfully")
}

// UpdateStatus changes a user's status. Requires the MANAGE permission.
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user id")
	}

	var input updateStatusRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.accountUC.UpdateStatus(c.Request().Context(), targetID, entity.UserStatus(input.Status)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Status updated successfully")
}

// Delete soft-deletes a user. Requires the DELETE permission.
func (h *UserHandler) Delete(c echo.Context) error {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user id")
	}

	if err := h.accountUC.DeleteAccount(c.Request().Context(), targetID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
