package sharepoint

import "fmt"

// Config holds SharePoint client configuration.
type Config struct {
	// BaseURL is the SharePoint web application root,
	// e.g. "https://sharepoint.example.com".
	BaseURL string
	// SiteName is the site collection name under /sites/.
	// If empty, URLs target the root site.
	SiteName string
	// MaxResults is the page size requested per collection fetch
	// (default 100, server caps at 5000).
	MaxResults int
	// InsecureSkipVerify disables TLS certificate verification.
	//
	// This exists solely as a compatibility shim for farms whose TLS
	// stack presents certificates Go refuses by default. It must be
	// opted into explicitly; never enable it outside that situation.
	InsecureSkipVerify bool
}

// DefaultConfig returns the default configuration for the given base URL.
func DefaultConfig(baseURL, siteName string) *Config {
	return &Config{
		BaseURL:    baseURL,
		SiteName:   siteName,
		MaxResults: 100,
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("sharepoint: base URL is required")
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("sharepoint: max results must not be negative")
	}
	if c.MaxResults > 5000 {
		return fmt.Errorf("sharepoint: max results must not exceed 5000")
	}
	return nil
}
