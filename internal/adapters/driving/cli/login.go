package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/spfetch/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Configure site and credentials",
	Long: `Store the SharePoint site and identity-provider settings.

Values not supplied as flags are prompted for interactively. The user
secret is always prompted, never accepted on the command line.

Examples:
  # User-credential auth
  spfetch login --site https://sharepoint.example.com --site-name teamsite \
      --tenant example.onmicrosoft.com --client-id <guid> --user alice@example.com

  # App-only auth (secret prompted)
  spfetch login --site https://sharepoint.example.com --auth-method app \
      --tenant example.onmicrosoft.com --client-id <guid>`,
	RunE: runLogin,
}

var (
	loginSite       string
	loginSiteName   string
	loginTenant     string
	loginClientID   string
	loginUsername   string
	loginAuthority  string
	loginResource   string
	loginAuthMethod string
)

func init() {
	loginCmd.Flags().StringVar(&loginSite, "site", "", "SharePoint web application root URL")
	loginCmd.Flags().StringVar(&loginSiteName, "site-name", "", "site collection name under /sites/")
	loginCmd.Flags().StringVar(&loginTenant, "tenant", "", "directory tenant name or GUID")
	loginCmd.Flags().StringVar(&loginClientID, "client-id", "", "registered client application ID")
	loginCmd.Flags().StringVar(&loginUsername, "user", "", "username for user-credential auth")
	loginCmd.Flags().StringVar(&loginAuthority, "authority", "", "identity provider base URL (default Azure AD)")
	loginCmd.Flags().StringVar(&loginResource, "resource", "", "token audience (default: site URL)")
	loginCmd.Flags().StringVar(&loginAuthMethod, "auth-method", "user", "authentication method: user or app")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	method := config.AuthMethod(loginAuthMethod)
	if method != config.AuthUser && method != config.AuthApp {
		return fmt.Errorf("invalid auth method %q, expected user or app", loginAuthMethod)
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	site, err := promptIfEmpty(reader, loginSite, "Site URL")
	if err != nil {
		return err
	}
	tenant, err := promptIfEmpty(reader, loginTenant, "Tenant")
	if err != nil {
		return err
	}
	clientID, err := promptIfEmpty(reader, loginClientID, "Client ID")
	if err != nil {
		return err
	}

	settings := &config.Settings{
		SiteURL:     strings.TrimRight(site, "/"),
		SiteName:    loginSiteName,
		Authority:   loginAuthority,
		Tenant:      tenant,
		Resource:    loginResource,
		ClientID:    clientID,
		AuthMethod:  method,
		InsecureTLS: insecure,
	}

	switch method {
	case config.AuthUser:
		settings.Username, err = promptIfEmpty(reader, loginUsername, "Username")
		if err != nil {
			return err
		}
		settings.Password, err = promptSecret("Password")
		if err != nil {
			return err
		}
	case config.AuthApp:
		settings.ClientSecret, err = promptSecret("Client secret")
		if err != nil {
			return err
		}
	}

	store, err := config.NewStore(configPath)
	if err != nil {
		return err
	}
	if err := store.Save(settings); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", store.Path())
	return nil
}

// promptIfEmpty returns value, or reads one line from the reader when
// value is empty.
func promptIfEmpty(reader *bufio.Reader, value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprintf(os.Stderr, "%s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}
	return line, nil
}

// promptSecret reads a secret without echoing it.
func promptSecret(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	if len(secret) == 0 {
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}
	return string(secret), nil
}
