// n8n-render is a terminal client for the n8n workflow test-design backend.
//
// Describe an integration workflow in plain language, let the backend plan
// a contract with fixtures and assertions, then test-run the design in the
// backend's mock executor or against a real n8n instance:
//
//	n8n-render                                   # interactive TUI
//	n8n-render run --goal "On POST {msg}, reply with uppercase msg"
//	n8n-render connection save --base-url https://n8n.example.com --api-key ...
//	n8n-render health
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MahanAzadBeast/n8n-render/internal/api"
	"github.com/MahanAzadBeast/n8n-render/internal/config"
	"github.com/MahanAzadBeast/n8n-render/internal/logging"
	"github.com/MahanAzadBeast/n8n-render/internal/session"
	"github.com/MahanAzadBeast/n8n-render/internal/tui"
	"github.com/MahanAzadBeast/n8n-render/internal/version"
)

var (
	flagServer string
	flagTheme  string

	cfg    *config.Config
	client *api.Client
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "n8n-render",
	Short:   "Design and test n8n workflows from natural-language goals",
	Version: versionString(),
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if flagServer != "" {
			cfg.Server.BaseURL = flagServer
		}
		if flagTheme != "" {
			cfg.UI.Theme = flagTheme
		}
		logger = logging.New(logging.Options{File: cfg.Log.File, Level: cfg.Log.Level})
		client = api.New(cfg.Server.BaseURL)
		client.HTTPClient.Timeout = cfg.Server.Timeout()
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !isTTY(os.Stdout) {
			return fmt.Errorf("stdout is not a terminal; use the run/design subcommands for scripted use")
		}
		theme, err := tui.LoadTheme(cfg.UI.Theme)
		if err != nil {
			return err
		}
		return tui.Run(cmd.Context(), tui.Options{
			Client:       client,
			Logger:       logger,
			Theme:        theme,
			DefaultMode:  session.Mode(cfg.Run.Mode),
			ConnectionID: cfg.Run.ConnectionID,
		})
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "theme yaml file (overrides config)")
	rootCmd.SilenceUsage = true
	// Errors print here so they pass through credential redaction.
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(designCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(connectionCmd())
	rootCmd.AddCommand(healthCmd())

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errRunFailed) {
		fmt.Fprintln(os.Stderr, "error:", logging.Redact(err.Error()))
	}
	os.Exit(exitCode(err))
}

// exitCode maps the Execute outcome to the process exit code: 0 for
// success, 1 for a FAIL verdict, 2 for everything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errRunFailed):
		return 1
	default:
		return 2
	}
}

func versionString() string {
	if version.CommitHash == "" || version.CommitHash == "unknown" {
		return version.Version
	}
	return version.Version + " (" + version.CommitHash + ")"
}

func isTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
