// Package token decodes session credentials issued by the rental API.
//
// The signature is NOT verified here: the API verifies it on every call that
// carries the credential. Decoding only reads the payload to route the user.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rentwheels/rental-web/internal/core/domain"
)

// credentialClaims is the payload shape the rental API signs.
type credentialClaims struct {
	jwt.RegisteredClaims
	Role     string `json:"role"`
	ID       string `json:"id,omitempty"`
	UserID   string `json:"userId,omitempty"`
	ObjectID string `json:"_id,omitempty"`
}

// Decoder turns a compact JWT into domain claims.
type Decoder struct {
	parser *jwt.Parser
	now    func() time.Time
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithClock overrides the time source used for the expiry check.
func WithClock(now func() time.Time) Option {
	return func(d *Decoder) { d.now = now }
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{parser: jwt.NewParser(), now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads the payload of raw. It never returns an error: every failure is
// folded into domain.InvalidCredential.
func (d *Decoder) Decode(raw string) domain.DecodeResult {
	var c credentialClaims
	if _, _, err := d.parser.ParseUnverified(raw, &c); err != nil {
		return domain.InvalidCredential{Reason: err.Error()}
	}

	if c.ExpiresAt != nil && !d.now().Before(c.ExpiresAt.Time) {
		return domain.InvalidCredential{Reason: "credential expired"}
	}

	if c.Role == "" {
		return domain.InvalidCredential{Reason: "role claim missing"}
	}
	role, err := domain.ParseRole(c.Role)
	if err != nil {
		return domain.InvalidCredential{Reason: err.Error()}
	}

	claims := domain.Claims{Subject: subject(c), Role: role}
	if c.IssuedAt != nil {
		claims.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		claims.ExpiresAt = c.ExpiresAt.Time
	}
	return domain.ValidClaims{Claims: claims}
}

func subject(c credentialClaims) string {
	switch {
	case c.Subject != "":
		return c.Subject
	case c.ID != "":
		return c.ID
	case c.UserID != "":
		return c.UserID
	}
	return c.ObjectID
}
