package domain

import "time"

// Claims is the decoded payload of a session credential. Claims are trusted at
// face value: the signature is verified by the rental API, never here.
type Claims struct {
	Subject   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// DecodeResult is either ValidClaims or InvalidCredential.
type DecodeResult interface {
	decodeResult()
}

// ValidClaims wraps the claims of a credential that decoded cleanly.
type ValidClaims struct {
	Claims Claims
}

// InvalidCredential reports why a credential could not be used.
type InvalidCredential struct {
	Reason string
}

func (ValidClaims) decodeResult()       {}
func (InvalidCredential) decodeResult() {}

// CredentialAttributes controls how a credential is persisted client-side.
type CredentialAttributes struct {
	// TTL is the expiry horizon handed to the browser. Zero means a session cookie.
	TTL time.Duration
	// Secure restricts the credential to HTTPS transport.
	Secure bool
}

// DecisionKind is the outcome class of a guard evaluation.
type DecisionKind uint8

const (
	DecisionAllow DecisionKind = iota + 1
	DecisionRedirect
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionAllow:
		return "allow"
	case DecisionRedirect:
		return "redirect"
	}
	return "unknown"
}

// Decision is what the route guard returns for a navigation: render the view
// (Allow, with the caller's claims) or go to Location (Redirect).
type Decision struct {
	Kind     DecisionKind
	Location string
	Claims   Claims
}

// Allow builds an Allow decision for the given claims.
func Allow(c Claims) Decision {
	return Decision{Kind: DecisionAllow, Claims: c}
}

// RedirectTo builds a Redirect decision.
func RedirectTo(path string) Decision {
	return Decision{Kind: DecisionRedirect, Location: path}
}

// Allowed reports whether the view may be rendered.
func (d Decision) Allowed() bool {
	return d.Kind == DecisionAllow
}
