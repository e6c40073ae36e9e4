package sharepoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("https://sharepoint.example.com", "team")

	assert.Equal(t, "https://sharepoint.example.com", cfg.BaseURL)
	assert.Equal(t, "team", cfg.SiteName)
	assert.Equal(t, 100, cfg.MaxResults)
	assert.False(t, cfg.InsecureSkipVerify, "TLS verification must default on")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(_ *Config) {},
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "negative max results",
			mutate:  func(c *Config) { c.MaxResults = -1 },
			wantErr: true,
		},
		{
			name:    "max results above server cap",
			mutate:  func(c *Config) { c.MaxResults = 5001 },
			wantErr: true,
		},
		{
			name:   "max results at server cap",
			mutate: func(c *Config) { c.MaxResults = 5000 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("https://sharepoint.example.com", "team")
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
