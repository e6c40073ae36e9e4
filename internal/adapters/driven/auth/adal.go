package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/spfetch/internal/core/domain"
)

// defaultAuthority is the Azure AD login endpoint used when no authority
// is configured.
const defaultAuthority = "https://login.microsoftonline.com"

// Acquirer obtains a fresh credential from an identity provider.
// Implementations do not cache; the CachedTokenProvider owns caching.
type Acquirer interface {
	Acquire(ctx context.Context) (*domain.Credential, error)
}

// UserCredentialAcquirer acquires tokens from Azure AD using the resource
// owner password grant, the flow SharePoint 2013 on-premise federations
// commonly expose for non-interactive clients.
type UserCredentialAcquirer struct {
	// Authority is the identity provider base URL. Defaults to the
	// public Azure AD endpoint if empty.
	Authority string
	// Tenant is the directory tenant (name or GUID).
	Tenant string
	// Resource is the resource URI to request a token for, normally the
	// SharePoint site base URL.
	Resource string
	// ClientID identifies the registered client application.
	ClientID string
	// Username and Password are the resource owner's credentials.
	Username string
	Password string

	// HTTPClient performs the token request. Defaults to a client with a
	// 30 second timeout if nil.
	HTTPClient *http.Client
}

// tokenResponse is the identity provider's token endpoint reply.
// ExpiresOn arrives either as an ISO-8601 timestamp or as Unix epoch
// seconds depending on the provider build; ExpiresIn is the fallback.
type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	Resource    string      `json:"resource"`
	ExpiresOn   string      `json:"expires_on"`
	ExpiresIn   json.Number `json:"expires_in"`
}

// errorResponse is the identity provider's failure reply.
type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// Acquire requests a fresh token from the identity provider.
func (a *UserCredentialAcquirer) Acquire(ctx context.Context) (*domain.Credential, error) {
	authority := a.Authority
	if authority == "" {
		authority = defaultAuthority
	}
	tokenURL := strings.TrimRight(authority, "/") + "/" + a.Tenant + "/oauth2/token"

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", a.ClientID)
	form.Set("resource", a.Resource)
	form.Set("username", a.Username)
	form.Set("password", a.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	client := a.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%w: %s: %s", domain.ErrAuthRequired, errResp.Error, errResp.Description)
		}
		return nil, fmt.Errorf("%w: token request failed with status %d", domain.ErrAuthRequired, resp.StatusCode)
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response has no access token", domain.ErrAuthRequired)
	}

	now := time.Now()
	expiresOn, err := parseExpiry(&tokenResp, now)
	if err != nil {
		return nil, err
	}

	return &domain.Credential{
		Token:     tokenResp.AccessToken,
		TokenType: tokenResp.TokenType,
		Resource:  tokenResp.Resource,
		IssuedAt:  now,
		ExpiresOn: expiresOn,
	}, nil
}

// parseExpiry resolves the credential expiry from whichever field the
// provider populated.
func parseExpiry(resp *tokenResponse, now time.Time) (time.Time, error) {
	if resp.ExpiresOn != "" {
		if t, err := time.Parse(time.RFC3339, resp.ExpiresOn); err == nil {
			return t, nil
		}
		if secs, err := strconv.ParseInt(resp.ExpiresOn, 10, 64); err == nil {
			return time.Unix(secs, 0), nil
		}
		return time.Time{}, fmt.Errorf("token response has unparseable expires_on %q", resp.ExpiresOn)
	}
	if secs, err := resp.ExpiresIn.Int64(); err == nil && secs > 0 {
		return now.Add(time.Duration(secs) * time.Second), nil
	}
	return time.Time{}, fmt.Errorf("token response carries no expiry")
}
