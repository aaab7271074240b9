package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
	"github.com/rentwheels/rental-web/internal/infrastructure/session"
)

const sessionKey = "session"

// Authorizer decides whether the credential in store may see a view.
type Authorizer interface {
	Authorize(store ports.CredentialStore, required domain.Role) domain.Decision
}

// Session is what a guarded handler knows about the caller.
type Session struct {
	Token  string
	Claims domain.Claims
	Store  ports.CredentialStore
}

// SessionFrom returns the session attached by RequireRole.
func SessionFrom(c echo.Context) (Session, bool) {
	s, ok := c.Get(sessionKey).(Session)
	return s, ok
}

// RequireRole runs the route guard for every request. A Redirect decision
// becomes a 302. RoleNone admits any valid credential.
func RequireRole(guard Authorizer, sessions *session.Manager, required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store := sessions.For(c)
			decision := guard.Authorize(store, required)
			if !decision.Allowed() {
				return Redirect(c, decision.Location)
			}

			token, _ := store.Get()
			c.Set(sessionKey, Session{Token: token, Claims: decision.Claims, Store: store})
			return next(c)
		}
	}
}

// Redirect sends the client to location with a 302.
func Redirect(c echo.Context, location string) error {
	return c.Redirect(http.StatusFound, location)
}
