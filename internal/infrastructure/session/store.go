// Package session keeps the credential in an HTTP cookie, one store per request.
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentwheels/rental-web/internal/core/domain"
)

// DefaultCookieName matches the name browsers of the previous client already hold.
const DefaultCookieName = "authToken"

const storeKey = "session.store"

// Config controls the credential cookie.
type Config struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager hands out per-request credential stores.
type Manager struct {
	cfg Config
}

func NewManager(cfg Config) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	return &Manager{cfg: cfg}
}

// Attributes are the defaults used when a credential is persisted at login.
func (m *Manager) Attributes() domain.CredentialAttributes {
	return domain.CredentialAttributes{TTL: m.cfg.TTL, Secure: m.cfg.Secure}
}

// For returns the credential store bound to the request behind c. Repeated
// calls within one request return the same store.
func (m *Manager) For(c echo.Context) *CookieStore {
	if s, ok := c.Get(storeKey).(*CookieStore); ok && s.name == m.cfg.CookieName {
		return s
	}
	s := &CookieStore{c: c, name: m.cfg.CookieName, secure: m.cfg.Secure}
	if cookie, err := c.Cookie(s.name); err == nil {
		if v := strings.TrimSpace(cookie.Value); v != "" {
			s.token, s.present = v, true
		}
	}
	c.Set(storeKey, s)
	return s
}

// CookieStore is the credential store for a single request. Reads reflect
// writes made earlier in the same request.
type CookieStore struct {
	c       echo.Context
	name    string
	secure  bool
	token   string
	present bool
}

func (s *CookieStore) Get() (string, bool) {
	return s.token, s.present
}

func (s *CookieStore) Set(token string, attrs domain.CredentialAttributes) {
	cookie := &http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   attrs.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if attrs.TTL > 0 {
		cookie.MaxAge = int(attrs.TTL / time.Second)
		cookie.Expires = time.Now().Add(attrs.TTL)
	}
	s.c.SetCookie(cookie)
	s.token, s.present = token, true
}

// Clear expires the cookie. It writes the expiry even when nothing was
// stored, so it is safe to call repeatedly.
func (s *CookieStore) Clear() {
	s.c.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
	s.token, s.present = "", false
}
