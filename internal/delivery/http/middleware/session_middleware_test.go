package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/config"
	"coursehub/internal/delivery/http/cookie"
	"coursehub/internal/domain/entity"
	"coursehub/internal/domain/service"
	"coursehub/internal/infra/auth"
	"coursehub/internal/infra/persistence/memory"
)

// countingRepo wraps the in-memory store and counts FindByID calls so tests
// can assert the middleware never touches the store without a cookie.
type countingRepo struct {
	*memory.CredentialRepository
	findByIDCalls atomic.Int64
}

func (r *countingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.findByIDCalls.Add(1)

	return r.CredentialRepository.FindByID(ctx, id)
}

type sessionFixture struct {
	repo         *countingRepo
	tokenService service.TokenService
	middleware   *SessionMiddleware
	echo         *echo.Echo
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	cfg := &config.Config{SecretKey: config.SecretKey{Token: "test-secret"}}
	cfg.Env.Env = "development"

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	repo := &countingRepo{CredentialRepository: memory.NewCredentialRepository()}
	cookies := cookie.NewManager(cfg, tokenService)

	return &sessionFixture{
		repo:         repo,
		tokenService: tokenService,
		middleware:   NewSessionMiddleware(tokenService, repo, cookies),
		echo:         echo.New(),
	}
}

func (f *sessionFixture) seedUser(t *testing.T, role entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{
		Name:    "Aziza Karimova",
		Phone:   "+998901234567",
		PinHash: "$2a$10$fakehash",
		Role:    role,
		Status:  entity.StatusActive,
	}
	require.NoError(t, f.repo.Create(context.Background(), user))

	return user
}

func (f *sessionFixture) do(t *testing.T, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)

	handler := f.middleware.Authenticate(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec, c
}

func TestSessionMiddleware_ValidAccessCookie(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)
	user := f.seedUser(t, entity.RoleAdmin)

	accessToken, err := f.tokenService.IssueAccessToken(user.ID, user.Role)
	require.NoError(t, err)

	rec, c := f.do(t, &http.Cookie{Name: cookie.AccessTokenCookie, Value: accessToken})
	assert.Equal(t, http.StatusOK, rec.Code)

	gotID, ok := UserID(c)
	require.True(t, ok)
	assert.Equal(t, user.ID, gotID)

	gotRole, ok := UserRole(c)
	require.True(t, ok)
	assert.Equal(t, entity.RoleAdmin, gotRole)

	// The access path never consults the store.
	assert.Zero(t, f.repo.findByIDCalls.Load())
}

func TestSessionMiddleware_NoCookies(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)

	rec, _ := f.do(t)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// Without any cookie the store must never be read.
	assert.Zero(t, f.repo.findByIDCalls.Load())
}

func TestSessionMiddleware_RefreshTransparency(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)
	user := f.seedUser(t, entity.RoleUser)

	refreshToken, err := f.tokenService.IssueRefreshToken(user.ID)
	require.NoError(t, err)

	rec, c := f.do(t, &http.Cookie{Name: cookie.RefreshTokenCookie, Value: refreshToken})
	assert.Equal(t, http.StatusOK, rec.Code)

	gotID, ok := UserID(c)
	require.True(t, ok)
	assert.Equal(t, user.ID, gotID)

	// The middleware minted a replacement access cookie that verifies.
	var accessCookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookie.AccessTokenCookie {
			accessCookie = ck
		}
	}
	require.NotNil(t, accessCookie)

	claims, err := f.tokenService.VerifyAccessToken(accessCookie.Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Role, claims.Role)
}

func TestSessionMiddleware_RefreshForDeletedUser(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)
	user := f.seedUser(t, entity.RoleUser)

	refreshToken, err := f.tokenService.IssueRefreshToken(user.ID)
	require.NoError(t, err)
	require.NoError(t, f.repo.SoftDelete(context.Background(), user.ID, time.Now()))

	rec, _ := f.do(t, &http.Cookie{Name: cookie.RefreshTokenCookie, Value: refreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMiddleware_GarbageCookies(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)

	rec, _ := f.do(t,
		&http.Cookie{Name: cookie.AccessTokenCookie, Value: "garbage"},
		&http.Cookie{Name: cookie.RefreshTokenCookie, Value: "garbage"},
	)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMiddleware_RefreshTokenUnknownUser(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)

	refreshToken, err := f.tokenService.IssueRefreshToken(uuid.New())
	require.NoError(t, err)

	rec, _ := f.do(t, &http.Cookie{Name: cookie.RefreshTokenCookie, Value: refreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermission(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)

	run := func(role entity.Role, permission entity.Permission) int {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		rec := httptest.NewRecorder()
		c := f.echo.NewContext(req, rec)
		c.Set(ContextKeyUserID, uuid.New())
		c.Set(ContextKeyUserRole, role)

		handler := f.middleware.RequirePermission(permission)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))

		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run(entity.RoleAdmin, entity.PermissionManage))
	assert.Equal(t, http.StatusOK, run(entity.RoleOwner, entity.PermissionOwn))
	assert.Equal(t, http.StatusForbidden, run(entity.RoleUser, entity.PermissionManage))
	assert.Equal(t, http.StatusForbidden, run(entity.RoleAdmin, entity.PermissionOwn))
}

func TestRequirePermission_MissingIdentity(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)

	handler := f.middleware.RequirePermission(entity.PermissionRead)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
