package domain

import "time"

// Credential is an access credential issued by the identity provider.
// It is immutable once issued: the token cache replaces credentials,
// it never mutates them.
type Credential struct {
	// Token is the opaque bearer token.
	Token string
	// TokenType is the token scheme reported by the identity provider
	// (normally "Bearer").
	TokenType string
	// Resource is the resource URI the token was issued for.
	Resource string
	// IssuedAt is when the credential was acquired.
	IssuedAt time.Time
	// ExpiresOn is the provider-reported expiry time.
	// Invariant: ExpiresOn is after IssuedAt.
	ExpiresOn time.Time
}

// Expired reports whether the credential is past its expiry at the given
// time, allowing the grace window. The grace extends the credential's
// usable life past nominal expiry: a credential is only considered
// expired once now is later than ExpiresOn plus grace.
func (c *Credential) Expired(now time.Time, grace time.Duration) bool {
	return now.After(c.ExpiresOn.Add(grace))
}
