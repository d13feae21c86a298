package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var folderID string

var folderURLsCmd = &cobra.Command{
	Use:   "folder-urls",
	Short: "List the document URLs in a Quip folder",
	Long: `Retrieve the documents directly inside a folder and print their URLs
as a YAML list, indented for pasting into a playbook or config file.`,
	RunE: runFolderURLs,
}

func init() {
	folderURLsCmd.Flags().StringVar(&folderID, "id", "", "Quip folder id")
	folderURLsCmd.MarkFlagRequired("id")
}

func runFolderURLs(cmd *cobra.Command, args []string) error {
	session, err := buildSession()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	ids, err := session.FolderThreads(ctx, folderID)
	if err != nil {
		return err
	}

	for _, id := range ids {
		link, err := session.ThreadLink(ctx, id)
		if err != nil {
			logger.Warn("Skipping thread without a link", zap.String("thread", id), zap.Error(err))
			continue
		}
		fmt.Printf("        - %s\n", link)
	}
	return nil
}
