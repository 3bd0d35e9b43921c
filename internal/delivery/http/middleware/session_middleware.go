package middleware

import (
	"coursehub/internal/delivery/http/cookie"
	"coursehub/internal/delivery/http/response"
	"coursehub/internal/domain/entity"
	"coursehub/internal/domain/repository"
	"coursehub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyUserID is where the session middleware stores the subject ID.
	ContextKeyUserID = "userID"
	// ContextKeyUserRole is where the session middleware stores the role.
	ContextKeyUserRole = "userRole"
)

// UserID extracts the authenticated subject ID placed by the session middleware.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextKeyUserID).(uuid.UUID)

	return id, ok
}

// UserRole extracts the authenticated role placed by the session middleware.
func UserRole(c echo.Context) (entity.Role, bool) {
	role, ok := c.Get(ContextKeyUserRole).(entity.Role)

	return role, ok
}

// SessionMiddleware authenticates requests from the auth cookie pair.
//
// Per request it walks a fixed ladder: a valid access cookie attaches the
// identity straight from its claims; otherwise a valid refresh cookie loads
// the user from the credential store, mints a replacement access cookie and
// attaches the identity; otherwise the request is rejected with 401. When no
// cookie is present at all the store is never touched.
type SessionMiddleware struct {
	tokenService   service.TokenService
	credentialRepo repository.CredentialRepository
	cookies        *cookie.Manager
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(tokenService service.TokenService, credentialRepo repository.CredentialRepository, cookies *cookie.Manager) *SessionMiddleware {
	return &SessionMiddleware{
		tokenService:   tokenService,
		credentialRepo: credentialRepo,
		cookies:        cookies,
	}
}

// Authenticate is the session gate applied to every protected route.
func (m *SessionMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if accessCookie, err := c.Cookie(cookie.AccessTokenCookie); err == nil {
			if claims, err := m.tokenService.VerifyAccessToken(accessCookie.Value); err == nil {
				c.Set(ContextKeyUserID, claims.UserID)
				c.Set(ContextKeyUserRole, claims.Role)

				return next(c)
			}
		}

		// Access token missing or dead; fall through to the refresh path.
		refreshCookie, err := c.Cookie(cookie.RefreshTokenCookie)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "")
		}

		claims, err := m.tokenService.VerifyRefreshToken(refreshCookie.Value)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "")
		}

		// The refresh claim carries no role, so the user record is the
		// authority here. A vanished or soft-deleted account ends the session.
		user, err := m.credentialRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil || user.IsDeleted() {
			return response.Unauthorized(c, "UNAUTHORIZED", "")
		}

		accessToken, err := m.tokenService.IssueAccessToken(user.ID, user.Role)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "")
		}
		m.cookies.SetAccessCookie(c, accessToken)

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUserRole, user.Role)

		return next(c)
	}
}

// RequirePermission is a middleware factory gating a route on a single
// permission. It must run AFTER Authenticate.
func (m *SessionMiddleware) RequirePermission(permission entity.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := UserRole(c)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "")
			}

			if !entity.Allows(role, permission) {
				return response.Forbidden(c, "FORBIDDEN", "")
			}

			return next(c)
		}
	}
}
