// Command ansiquip batch-updates Quip documents: find/replace a table cell
// value, live-paste a section after a heading, or list the documents in a
// folder. It prints a JSON result object and exits non-zero when no
// document was updated.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wes-spinks/ansiquip"
	"github.com/wes-spinks/ansiquip/internal/config"
	"github.com/wes-spinks/ansiquip/quip"
	"github.com/wes-spinks/ansiquip/ratelimit"
)

var (
	// Global flags
	configPath string
	token      string
	tokenFile  string
	baseURL    string
	verbose    bool
	checkMode  bool

	// Loaded configuration (file values merged with flags)
	cfg config.Config

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ansiquip",
	Short: "Batch mutations for Quip documents",
	Long: `ansiquip locates an anchor (a table cell or a section heading,
matched by exact text) in each of a batch of Quip documents and applies a
content mutation at that anchor through the Quip Automation API.

Each document is processed independently; the run as a whole fails only
when no document was updated.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		// Flags override file values.
		if token != "" {
			cfg.Token = token
		}
		if tokenFile != "" {
			cfg.TokenFile = tokenFile
		}
		if baseURL != "" {
			cfg.BaseAPIURL = baseURL
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Quip API token")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "file containing the Quip API token")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "alternate API base URL (default "+quip.DefaultBaseURL+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&checkMode, "check", false, "report what would be done without making changes")

	rootCmd.AddCommand(updateCellCmd)
	rootCmd.AddCommand(pasteCmd)
	rootCmd.AddCommand(folderURLsCmd)
}

// buildSession creates the API session from the merged configuration.
func buildSession() (*quip.Session, error) {
	tok, err := cfg.ResolveToken()
	if err != nil {
		return nil, err
	}

	opts := []quip.Option{}
	if cfg.BaseAPIURL != "" {
		opts = append(opts, quip.WithBaseURL(cfg.BaseAPIURL))
	}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, quip.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		}))
	}
	return quip.NewSession(tok, opts...), nil
}

// buildGovernor creates the rate-limit governor from the merged
// configuration.
func buildGovernor() *ratelimit.Governor {
	if cfg.RateLimitThreshold > 0 {
		return ratelimit.New(ratelimit.WithThreshold(cfg.RateLimitThreshold))
	}
	return ratelimit.New()
}

// printResult writes the host-surfaced result JSON to stdout.
func printResult(res ansiquip.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// emptyResult is what --check prints: no changes, nothing attempted.
func emptyResult() ansiquip.Result {
	return ansiquip.Result{
		Successful:   []string{},
		Unsuccessful: []string{},
	}
}

// finishRun prints the report and converts a zero-success batch into a
// command failure so automation sees a non-zero exit.
func finishRun(report *ansiquip.Report) error {
	if err := printResult(report.Result()); err != nil {
		return err
	}
	if report.Failed() {
		return fmt.Errorf("no Quip documents were successfully updated")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
