package cli

import (
	"fmt"

	"github.com/custodia-labs/spfetch/internal/adapters/driven/auth"
	"github.com/custodia-labs/spfetch/internal/config"
	"github.com/custodia-labs/spfetch/internal/connectors/sharepoint"
	"github.com/custodia-labs/spfetch/internal/core/domain"
)

// loadSettings reads the persisted settings and validates that login has
// been run.
func loadSettings() (*config.Settings, error) {
	store, err := config.NewStore(configPath)
	if err != nil {
		return nil, err
	}

	settings, err := store.Load()
	if err != nil {
		return nil, err
	}
	if settings.SiteURL == "" {
		return nil, domain.ErrNotConfigured
	}
	return settings, nil
}

// newClient builds a SharePoint client and its token provider from the
// persisted settings and the invocation's flags.
func newClient() (*sharepoint.Client, *auth.CachedTokenProvider, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}

	resource := settings.Resource
	if resource == "" {
		resource = settings.SiteURL
	}

	var acquirer auth.Acquirer
	switch settings.AuthMethod {
	case config.AuthApp:
		acquirer = auth.NewAppOnlyAcquirer(
			settings.Authority, settings.Tenant,
			settings.ClientID, settings.ClientSecret, resource,
		)
	case config.AuthUser, "":
		acquirer = &auth.UserCredentialAcquirer{
			Authority: settings.Authority,
			Tenant:    settings.Tenant,
			Resource:  resource,
			ClientID:  settings.ClientID,
			Username:  settings.Username,
			Password:  settings.Password,
		}
	default:
		return nil, nil, fmt.Errorf("unknown auth method %q", settings.AuthMethod)
	}

	provider := auth.NewCachedTokenProvider(acquirer)
	provider.SetLogging(verbose)

	cfg := sharepoint.DefaultConfig(settings.SiteURL, settings.SiteName)
	if settings.MaxResults > 0 {
		cfg.MaxResults = settings.MaxResults
	}
	cfg.InsecureSkipVerify = settings.InsecureTLS || insecure
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return sharepoint.NewClient(cfg, provider), provider, nil
}
