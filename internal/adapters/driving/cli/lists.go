package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/spfetch/internal/core/domain"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "List the site's lists",
	RunE:  runLists,
}

func init() {
	rootCmd.AddCommand(listsCmd)
}

func runLists(cmd *cobra.Command, _ []string) error {
	client, provider, err := newClient()
	if err != nil {
		return err
	}

	lists, err := fetchWithAuthRetry(provider, func() ([]domain.ListItem, error) {
		return client.FetchLists(cmd.Context())
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	header := color.New(color.Bold)
	header.Fprintf(out, "%-38s  %-30s  %s\n", "ID", "TITLE", "ITEMS")

	for _, list := range lists {
		fmt.Fprintf(out, "%-38s  %-30s  %v\n",
			list.StringField("Id"),
			list.StringField("Title"),
			list["ItemCount"],
		)
	}
	return nil
}
