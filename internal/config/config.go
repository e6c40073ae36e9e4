// Package config persists spfetch settings in a TOML file under the
// user's home directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AuthMethod selects how tokens are acquired.
type AuthMethod string

const (
	// AuthUser uses the resource owner password grant.
	AuthUser AuthMethod = "user"
	// AuthApp uses the client credentials grant (app-only).
	AuthApp AuthMethod = "app"
)

// Settings holds the persisted configuration.
type Settings struct {
	// SiteURL is the SharePoint web application root.
	SiteURL string `toml:"site_url"`
	// SiteName is the site collection name under /sites/.
	SiteName string `toml:"site_name,omitempty"`
	// Authority is the identity provider base URL (optional).
	Authority string `toml:"authority,omitempty"`
	// Tenant is the directory tenant.
	Tenant string `toml:"tenant"`
	// Resource is the token audience; defaults to SiteURL when empty.
	Resource string `toml:"resource,omitempty"`
	// ClientID identifies the registered client application.
	ClientID string `toml:"client_id"`
	// ClientSecret is used by the app-only grant.
	ClientSecret string `toml:"client_secret,omitempty"`
	// Username and Password are used by the user-credential grant.
	Username string `toml:"username,omitempty"`
	Password string `toml:"password,omitempty"`
	// AuthMethod is "user" or "app".
	AuthMethod AuthMethod `toml:"auth_method"`
	// InsecureTLS disables TLS certificate verification for farms with
	// broken TLS stacks. Off unless explicitly enabled.
	InsecureTLS bool `toml:"insecure_tls,omitempty"`
	// MaxResults is the collection page size to request.
	MaxResults int `toml:"max_results,omitempty"`
}

// Store reads and writes the settings file.
type Store struct {
	path string
}

// NewStore creates a store at the given path, or the default
// ~/.spfetch/config.toml when path is empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, ".spfetch", "config.toml")
	}
	return &Store{path: path}, nil
}

// Load reads settings from disk. A missing file yields zero-value
// settings with no error.
func (s *Store) Load() (*Settings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var settings Settings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &settings, nil
}

// Save writes settings to disk, creating the directory if needed.
// The file is restricted to the owner since it may hold credentials.
func (s *Store) Save(settings *Settings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}
