package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/spfetch/internal/core/domain"
)

var filesCmd = &cobra.Command{
	Use:   "files [folder-path]",
	Short: "List the files in a server-relative folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runFiles,
}

var foldersCmd = &cobra.Command{
	Use:   "folders [folder-path]",
	Short: "List the subfolders of a server-relative folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolders,
}

var attachmentCmd = &cobra.Command{
	Use:   "attachment [list-guid] [item-id] [file-name]",
	Short: "Download a single item attachment",
	Args:  cobra.ExactArgs(3),
	RunE:  runAttachment,
}

var attachmentOut string

func init() {
	attachmentCmd.Flags().StringVarP(&attachmentOut, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(foldersCmd)
	rootCmd.AddCommand(attachmentCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	client, provider, err := newClient()
	if err != nil {
		return err
	}

	files, err := fetchWithAuthRetry(provider, func() ([]domain.ListItem, error) {
		return client.FetchFolderFiles(cmd.Context(), args[0])
	})
	if err != nil {
		return err
	}

	printNamed(cmd, files, "Name", "Length")
	return nil
}

func runFolders(cmd *cobra.Command, args []string) error {
	client, provider, err := newClient()
	if err != nil {
		return err
	}

	folders, err := fetchWithAuthRetry(provider, func() ([]domain.ListItem, error) {
		return client.FetchSubfolders(cmd.Context(), args[0])
	})
	if err != nil {
		return err
	}

	printNamed(cmd, folders, "Name", "ItemCount")
	return nil
}

func runAttachment(cmd *cobra.Command, args []string) error {
	itemID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid item id %q: %w", args[1], err)
	}

	client, provider, err := newClient()
	if err != nil {
		return err
	}

	data, err := fetchWithAuthRetry(provider, func() ([]byte, error) {
		return client.DownloadAttachment(cmd.Context(), args[0], itemID, args[2])
	})
	if err != nil {
		return err
	}

	if attachmentOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(attachmentOut, data, 0600)
}

// printNamed prints a name column plus one extra field.
func printNamed(cmd *cobra.Command, items []domain.ListItem, nameField, extraField string) {
	out := cmd.OutOrStdout()
	header := color.New(color.Bold)
	header.Fprintf(out, "%-50s  %s\n", nameField, extraField)

	for _, item := range items {
		fmt.Fprintf(out, "%-50s  %v\n", item.StringField(nameField), item[extraField])
	}
}
