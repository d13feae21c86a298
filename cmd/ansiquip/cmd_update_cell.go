package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wes-spinks/ansiquip"
)

var (
	updateCellURLs []string
	updateCellFind string
	updateCellRepl string
	updateCellMark string
)

var updateCellCmd = &cobra.Command{
	Use:   "update-cell",
	Short: "Find and replace a table cell value across documents",
	Long: `Find the table cell containing an exact string in each target document
and replace its value.

Example:

  ansiquip update-cell \
      --url https://team.quip.com/3XAMPL3D0C/my-demo-doc \
      --url https://org.quip.com/eXAmpl3d0C/another-doc \
      --find 'Demo Value' --replace 'New Value' --markdown bold`,
	RunE: runUpdateCell,
}

func init() {
	updateCellCmd.Flags().StringArrayVar(&updateCellURLs, "url", nil, "target document URL (repeatable)")
	updateCellCmd.Flags().StringVar(&updateCellFind, "find", "", "exact string to find")
	updateCellCmd.Flags().StringVar(&updateCellRepl, "replace", "", "replacement value")
	updateCellCmd.Flags().StringVar(&updateCellMark, "markdown", "", "wrap the replacement: 'bold' or 'italic'")
	updateCellCmd.MarkFlagRequired("url")
	updateCellCmd.MarkFlagRequired("find")
	updateCellCmd.MarkFlagRequired("replace")
}

func runUpdateCell(cmd *cobra.Command, args []string) error {
	if checkMode {
		return printResult(emptyResult())
	}

	session, err := buildSession()
	if err != nil {
		return err
	}

	batch := ansiquip.New(session).
		Target(updateCellFind).
		Cells().
		Replace(updateCellRepl).
		WithGovernor(buildGovernor()).
		WithLogger(logger)

	switch updateCellMark {
	case "":
	case "bold":
		batch = batch.Bold()
	case "italic":
		batch = batch.Italic()
	default:
		return fmt.Errorf("--markdown must be 'bold' or 'italic', got %q", updateCellMark)
	}

	report, err := batch.Run(cmd.Context(), updateCellURLs)
	if err != nil {
		return err
	}
	return finishRun(report)
}
