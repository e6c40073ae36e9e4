package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/spfetch/internal/core/domain"
)

func newTokenServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestUserCredentialAcquirer_Acquire(t *testing.T) {
	var gotPath string
	var gotForm map[string]string

	server := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for key := range r.PostForm {
			gotForm[key] = r.PostForm.Get(key)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"access_token": "abc123",
			"token_type": "Bearer",
			"resource": "https://sharepoint.example.com",
			"expires_on": "%s"
		}`, time.Now().Add(time.Hour).UTC().Format(time.RFC3339))
	})

	acquirer := &UserCredentialAcquirer{
		Authority: server.URL,
		Tenant:    "contoso.onmicrosoft.com",
		Resource:  "https://sharepoint.example.com",
		ClientID:  "client-guid",
		Username:  "alice@contoso.com",
		Password:  "hunter2",
	}

	cred, err := acquirer.Acquire(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/contoso.onmicrosoft.com/oauth2/token", gotPath)
	assert.Equal(t, "password", gotForm["grant_type"])
	assert.Equal(t, "client-guid", gotForm["client_id"])
	assert.Equal(t, "https://sharepoint.example.com", gotForm["resource"])
	assert.Equal(t, "alice@contoso.com", gotForm["username"])
	assert.Equal(t, "hunter2", gotForm["password"])

	assert.Equal(t, "abc123", cred.Token)
	assert.Equal(t, "Bearer", cred.TokenType)
	assert.Equal(t, "https://sharepoint.example.com", cred.Resource)
	assert.True(t, cred.ExpiresOn.After(cred.IssuedAt))
}

func TestUserCredentialAcquirer_AuthFailure(t *testing.T) {
	server := newTokenServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": "invalid_grant", "error_description": "wrong password"}`)
	})

	acquirer := &UserCredentialAcquirer{
		Authority: server.URL,
		Tenant:    "contoso",
		ClientID:  "client-guid",
	}

	_, err := acquirer.Acquire(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Contains(t, err.Error(), "invalid_grant")
	assert.Contains(t, err.Error(), "wrong password")
}

func TestUserCredentialAcquirer_MissingAccessToken(t *testing.T) {
	server := newTokenServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"token_type": "Bearer"}`)
	})

	acquirer := &UserCredentialAcquirer{Authority: server.URL, Tenant: "contoso"}

	_, err := acquirer.Acquire(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestParseExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		resp     tokenResponse
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "ISO-8601 expires_on",
			resp:     tokenResponse{ExpiresOn: "2024-05-01T13:00:00Z"},
			expected: time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC),
		},
		{
			name:     "epoch seconds expires_on",
			resp:     tokenResponse{ExpiresOn: "1714568400"},
			expected: time.Unix(1714568400, 0),
		},
		{
			name:     "expires_in fallback",
			resp:     tokenResponse{ExpiresIn: json.Number("3600")},
			expected: now.Add(time.Hour),
		},
		{
			name:    "unparseable expires_on",
			resp:    tokenResponse{ExpiresOn: "tomorrow-ish"},
			wantErr: true,
		},
		{
			name:    "no expiry at all",
			resp:    tokenResponse{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseExpiry(&tt.resp, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
		})
	}
}
