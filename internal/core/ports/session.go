package ports

import "github.com/rentwheels/rental-web/internal/core/domain"

// CredentialStore holds the session credential for one client.
type CredentialStore interface {
	// Get returns the stored credential, or false when none is present.
	Get() (string, bool)
	// Set persists token with the given attributes, replacing any prior value.
	Set(token string, attrs domain.CredentialAttributes)
	// Clear removes the credential. Clearing an empty store is a no-op.
	Clear()
}

// ClaimsDecoder decodes a credential's payload without contacting the issuer.
type ClaimsDecoder interface {
	Decode(token string) domain.DecodeResult
}
