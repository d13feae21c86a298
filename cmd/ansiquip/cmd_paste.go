package main

import (
	"github.com/spf13/cobra"

	"github.com/wes-spinks/ansiquip"
	"github.com/wes-spinks/ansiquip/resolver"
)

var (
	pasteSourceURL     string
	pasteSourceSection string
	pasteDestURLs      []string
	pasteTargetHeader  string
	pastePrepend       bool
)

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Live paste a source section into documents at a target heading",
	Long: `Insert live-updating content from a source document section into each
destination document, after (or before, with --prepend) the heading whose
text exactly matches --target-header. Heading levels 1 through 3 are tried
in order.

Example:

  ansiquip paste \
      --source-url https://corp.quip.com/SRCDOC1/release-notes \
      --source-section-id 'temp:C:1234html56789' \
      --url https://team.quip.com/3XAMPL3D0C/my-demo-doc \
      --target-header 'My Section'`,
	RunE: runPaste,
}

func init() {
	pasteCmd.Flags().StringVar(&pasteSourceURL, "source-url", "", "source document URL")
	pasteCmd.Flags().StringVar(&pasteSourceSection, "source-section-id", "", "exact section id of the content to copy")
	pasteCmd.Flags().StringArrayVar(&pasteDestURLs, "url", nil, "destination document URL (repeatable)")
	pasteCmd.Flags().StringVar(&pasteTargetHeader, "target-header", "", "heading text to paste relative to")
	pasteCmd.Flags().BoolVar(&pastePrepend, "prepend", false, "insert before the heading instead of after")
	pasteCmd.MarkFlagRequired("source-url")
	pasteCmd.MarkFlagRequired("source-section-id")
	pasteCmd.MarkFlagRequired("url")
	pasteCmd.MarkFlagRequired("target-header")
}

func runPaste(cmd *cobra.Command, args []string) error {
	if checkMode {
		return printResult(emptyResult())
	}

	src, err := resolver.ParseURL(pasteSourceURL)
	if err != nil {
		return err
	}

	session, err := buildSession()
	if err != nil {
		return err
	}

	batch := ansiquip.New(session).
		Target(pasteTargetHeader).
		Headings().
		PasteFrom(src.ID, pasteSourceSection).
		WithGovernor(buildGovernor()).
		WithLogger(logger)
	if pastePrepend {
		batch = batch.Prepend()
	}

	report, err := batch.Run(cmd.Context(), pasteDestURLs)
	if err != nil {
		return err
	}
	return finishRun(report)
}
