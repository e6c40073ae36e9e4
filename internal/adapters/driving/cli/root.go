package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/spfetch/internal/logger"
)

var (
	// version is set by goreleaser ldflags.
	version = "dev"

	// verbose enables debug logging.
	verbose bool

	// insecure disables TLS certificate verification for this invocation,
	// overriding the persisted setting.
	insecure bool

	// configPath overrides the default config file location.
	configPath string
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "spfetch",
	Short: "Fetch lists, items, and files from SharePoint 2013",
	Long: `spfetch is a read-only client for the SharePoint 2013 REST API.

It acquires and caches access tokens, drains server-side pagination
transparently, and can fetch list items together with their attachments.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&insecure, "insecure", false, "skip TLS certificate verification (compatibility shim for broken farm TLS)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.spfetch/config.toml)")

	// Set verbose mode before any command executes
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	}
}
