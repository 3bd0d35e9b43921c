package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/config"
	"coursehub/internal/delivery/http/cookie"
	"coursehub/internal/delivery/http/middleware"
	"coursehub/internal/delivery/http/validator"
	"coursehub/internal/infra/auth"
	"coursehub/internal/infra/persistence/memory"
	"coursehub/internal/usecase/impl"
)

// authTestServer wires the full auth surface against the in-memory store.
type authTestServer struct {
	echo *echo.Echo
	repo *memory.CredentialRepository
}

func newAuthTestServer(t *testing.T) *authTestServer {
	t.Helper()

	cfg := &config.Config{SecretKey: config.SecretKey{Token: "test-secret"}}
	cfg.Env.Env = "development"

	logger := slog.New(slog.DiscardHandler)
	repo := memory.NewCredentialRepository()

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasherWithCost(4)
	cookies := cookie.NewManager(cfg, tokenService)

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:    memory.NewTransactionManager(repo),
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})
	pinUC := impl.NewPinService(impl.PinServiceParams{
		CredentialRepo: repo,
		Hasher:         hasher,
		Logger:         logger,
	})
	accountUC := impl.NewAccountService(impl.AccountServiceParams{
		CredentialRepo: repo,
		Logger:         logger,
	})

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	sessionMW := middleware.NewSessionMiddleware(tokenService, repo, cookies)
	authHandler := NewAuthHandler(authUC, pinUC, cookies, logger)
	userHandler := NewUserHandler(accountUC, logger)

	e.POST("/public/auth/register", authHandler.Register)
	e.POST("/public/auth/login", authHandler.Login)
	e.POST("/public/auth/logout", authHandler.Logout)
	e.GET("/api/users/me", userHandler.Me, sessionMW.Authenticate)
	e.POST("/api/auth/pin/verify", authHandler.VerifyPin, sessionMW.Authenticate)
	e.PATCH("/api/auth/pin/update", authHandler.UpdatePin, sessionMW.Authenticate)

	return &authTestServer{echo: e, repo: repo}
}

func (s *authTestServer) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, ck := range rec.Result().Cookies() {
		out[ck.Name] = ck
	}

	return out
}

// The fixture PIN must not be a digit run of the fixture phone, so the
// plaintext-leak assertion below cannot trip on the echoed phone number.
const registerBody = `{"name":"Aziza Karimova","phone":"+998901234567","pin":"4321","deviceId":"device-a"}`

func TestAuthFlow_Register(t *testing.T) {
	t.Parallel()

	srv := newAuthTestServer(t)
	rec := srv.do(http.MethodPost, "/public/auth/register", registerBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "4321")
	assert.NotContains(t, rec.Body.String(), "pinHash")

	cookies := cookiesByName(rec)
	require.Contains(t, cookies, cookie.AccessTokenCookie)
	require.Contains(t, cookies, cookie.RefreshTokenCookie)
	assert.True(t, cookies[cookie.AccessTokenCookie].HttpOnly)
	assert.True(t, cookies[cookie.RefreshTokenCookie].HttpOnly)
}

func TestAuthFlow_RegisterDuplicatePhone(t *testing.T) {
	t.Parallel()

	srv := newAuthTestServer(t)
	require.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/public/auth/register", registerBody).Code)

	rec := srv.do(http.MethodPost, "/public/auth/register", registerBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "DUPLICATE_PHONE")
}

func TestAuthFlow_RegisterValidation(t *testing.T) {
	t.Parallel()

	srv := newAuthTestServer(t)

	for name, body := range map[string]string{
		"short pin":   `{"name":"Aziza","phone":"+998901234567","pin":"12","deviceId":"d"}`,
		"bad phone":   `{"name":"Aziza","phone":"12-34","pin":"1234","deviceId":"d"}`,
		"no name":     `{"phone":"+998901234567","pin":"1234","deviceId":"d"}`,
		"no device":   `{"name":"Aziza","phone":"+998901234567","pin":"1234"}`,
		"letters pin": `{"name":"Aziza","phone":"+998901234567","pin":"12ab","deviceId":"d"}`,
	} {
		rec := srv.do(http.MethodPost, "/public/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestAuthFlow_LoginAndMe(t *testing.T) {
	t.Parallel()

	srv := newAuthTestServer(t)
	require.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/public/auth/register", registerBody).Code)

	rec := srv.do(http.MethodPost, "/public/auth/login", `{"phone":"+998901234567","pin":"4321"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := cookiesByName(rec)
	require.Contains(t, cookies, cookie.AccessTokenCookie)

	// The fresh access cookie opens the protected profile route.
	me := srv.do(http.MethodGet, "/api/users/me", "", cookies[cookie.AccessTokenCookie])
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), "+998901234567")
}

func TestAuthFlow_LoginWrongPin(t *testing.T) {
	t.Parallel()

	srv := newAuthTestServer(t)
	require.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/public/auth/register", registerBody).Code)

	rec := srv.do(http.MethodPost, "/public/auth/login", `{"phone":"+998901234567","pin":"0000"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// The message never reveals which factor failed.
	assert.NotContains(t, rec.Body.String(), "phone not found")
}

func TestAuthFlow_MeWithoutSession(t *testing.T) {
	t.Parallel()

	srv := newAuthTestServer(t)
	rec := srv.do(http.MethodGet, "/api/users/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthFlow_PinVerifyAndUpdate(t *testing.T) {
	t.Parallel()

	srv := newAuthTestServer(t)
	registered := srv.do(http.MethodPost, "/public/auth/register", registerBody)
	require.Equal(t, http.StatusCreated, registered.Code)
	access := cookiesByName(registered)[cookie.AccessTokenCookie]

	verify := srv.do(http.MethodPost, "/api/auth/pin/verify", `{"pin":"4321"}`, access)
	require.Equal(t, http.StatusOK, verify.Code)
	assert.Contains(t, verify.Body.String(), `"isValid":true`)

	update := srv.do(http.MethodPatch, "/api/auth/pin/update", `{"newPin":"5678"}`, access)
	require.Equal(t, http.StatusOK, update.Code)

	// Old PIN no longer verifies, new one does.
	verify = srv.do(http.MethodPost, "/api/auth/pin/verify", `{"pin":"4321"}`, access)
	require.Equal(t, http.StatusOK, verify.Code)
	assert.Contains(t, verify.Body.String(), `"isValid":false`)

	login := srv.do(http.MethodPost, "/public/auth/login", `{"phone":"+998901234567","pin":"5678"}`)
	assert.Equal(t, http.StatusOK, login.Code)
}

func TestAuthFlow_Logout(t *testing.T) {
	t.Parallel()

	srv := newAuthTestServer(t)
	rec := srv.do(http.MethodPost, "/public/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	for _, ck := range rec.Result().Cookies() {
		assert.Empty(t, ck.Value)
		assert.Negative(t, ck.MaxAge)
	}
}
