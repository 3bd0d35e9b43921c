// Package cookie centralizes the auth cookie policy: names, scope, lifetime
// and the production/development SameSite split.
package cookie

import (
	"net/http"
	"time"

	"coursehub/config"
	"coursehub/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	// AccessTokenCookie carries the short-lived access JWT.
	AccessTokenCookie = "access_token"
	// RefreshTokenCookie carries the long-lived refresh JWT.
	RefreshTokenCookie = "refresh_token"
)

// Manager builds and clears the auth cookie pair. Tokens are delivered only
// as HTTP-only cookies; they never appear in response bodies.
type Manager struct {
	domain     string
	production bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager derives the cookie policy from config and the token lifetimes.
func NewManager(cfg *config.Config, tokenService service.TokenService) *Manager {
	return &Manager{
		domain:     cfg.HTTP.CookieDomain,
		production: cfg.IsProduction(),
		accessTTL:  tokenService.AccessTokenTTL(),
		refreshTTL: tokenService.RefreshTokenTTL(),
	}
}

// SetAuthCookies attaches both tokens to the response.
func (m *Manager) SetAuthCookies(c echo.Context, accessToken, refreshToken string) {
	c.SetCookie(m.build(AccessTokenCookie, accessToken, m.accessTTL))
	c.SetCookie(m.build(RefreshTokenCookie, refreshToken, m.refreshTTL))
}

// SetAccessCookie attaches a fresh access token only. Used by the session
// middleware when it refreshes an expired access token transparently.
func (m *Manager) SetAccessCookie(c echo.Context, accessToken string) {
	c.SetCookie(m.build(AccessTokenCookie, accessToken, m.accessTTL))
}

// ClearAuthCookies expires both cookies immediately.
func (m *Manager) ClearAuthCookies(c echo.Context) {
	c.SetCookie(m.expire(AccessTokenCookie))
	c.SetCookie(m.expire(RefreshTokenCookie))
}

func (m *Manager) build(name, value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.domain,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
	}

	// Cross-site frontends need SameSite=None, which browsers only accept
	// together with Secure. Development stays on Lax over plain HTTP.
	if m.production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	return cookie
}

func (m *Manager) expire(name string) *http.Cookie {
	cookie := m.build(name, "", 0)
	cookie.MaxAge = -1

	return cookie
}
