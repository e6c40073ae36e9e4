package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/custodia-labs/spfetch/internal/core/domain"
)

// AppOnlyAcquirer acquires tokens with the OAuth client credentials
// grant, for app-only access where no user identity is involved.
type AppOnlyAcquirer struct {
	config clientcredentials.Config
}

// NewAppOnlyAcquirer creates an acquirer for the given client registration.
// The authority defaults to the public Azure AD endpoint if empty.
func NewAppOnlyAcquirer(authority, tenant, clientID, clientSecret, resource string) *AppOnlyAcquirer {
	if authority == "" {
		authority = defaultAuthority
	}
	return &AppOnlyAcquirer{
		config: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     strings.TrimRight(authority, "/") + "/" + tenant + "/oauth2/token",
			EndpointParams: url.Values{
				"resource": {resource},
			},
		},
	}
}

// Acquire requests a fresh app-only token.
func (a *AppOnlyAcquirer) Acquire(ctx context.Context) (*domain.Credential, error) {
	token, err := a.config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthRequired, err)
	}

	return &domain.Credential{
		Token:     token.AccessToken,
		TokenType: token.TokenType,
		Resource:  a.config.EndpointParams.Get("resource"),
		IssuedAt:  time.Now(),
		ExpiresOn: token.Expiry,
	}, nil
}
