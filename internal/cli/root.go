// Package cli implements the issuedash command tree. Commands receive
// their collaborators through a Dependencies container injected via the
// command context, so tests can swap in mocks.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/higexxp/issuedash/internal/config"
	"github.com/higexxp/issuedash/internal/github"
	"github.com/higexxp/issuedash/internal/notify"
	"github.com/higexxp/issuedash/internal/service"
	"github.com/higexxp/issuedash/internal/timetrack"
)

var (
	verbose bool // global flag for verbose output

	// Version is set via ldflags at build time
	Version = "dev"
)

// NewRootCmd creates the root command for the 'issuedash' CLI
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "issuedash",
		Short:   "Issue dependency and time-tracking dashboard",
		Version: Version,
		Long: `issuedash - issue dependency and time-tracking dashboard

Parses dependency declarations out of GitHub issue bodies, builds the
dependency graph with levels and cycle detection, and tracks working
time per user and issue.

Setup:
  auth login|logout|status     Manage the stored GitHub token

Dependencies:
  parse [file|-]               Parse dependencies from an issue body
  validate [file|-]            Parse and validate an issue body
  markdown [file|-]            Regenerate the Dependencies section
  sync [owner/repo...]         Pull open issues and build the graph

Time tracking (alias: t):
  track start <issue>          Start a session (takes over any live one)
  track pause <issue>          Pause the active session
  track resume <issue>         Resume a paused session
  track stop <issue>           Stop and record a time entry
  track entry <issue> <min>    Add a manual entry
  track status                 Show the current session
  track report                 Aggregate time report
  track labels <issue>         Recompute the time-spent label set

Server:
  serve                        Run the HTTP dashboard API`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text or json")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")

	rootCmd.AddCommand(
		newAuthCmd(),
		newParseCmd(),
		newValidateCmd(),
		newMarkdownCmd(),
		newSyncCmd(),
		newTrackCmd(),
		newServeCmd(),
	)

	return rootCmd
}

// Execute runs the CLI with dependency injection
func Execute() {
	rootCmd := NewRootCmd()

	// Flags are parsed by cobra later; the config path and log level are
	// needed before the command runs, so scan the raw arguments here.
	cfgPath := os.Getenv("ISSUEDASH_CONFIG")
	for i, arg := range os.Args[1:] {
		switch arg {
		case "--config":
			if i+2 < len(os.Args) {
				cfgPath = os.Args[i+2]
			}
		case "--verbose":
			verbose = true
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := timetrack.Open(cfg.Database.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Env and config take precedence; the stored token is the fallback.
	if cfg.GitHub.Token == "" {
		if store, err := tokenStore(); err == nil {
			if exists, _ := store.Exists(); exists {
				if tok, err := store.Load(); err == nil {
					cfg.GitHub.Token = tok
				}
			}
		}
	}

	var gh *github.Client
	if cfg.GitHub.Token != "" {
		gh = github.NewClient(github.ClientConfig{
			BaseURL: cfg.GitHub.BaseURL,
			Token:   cfg.GitHub.Token,
		}, nil)
	}

	broadcaster := notify.NewBroadcaster(logger)
	services := service.New(cfg, store, gh, broadcaster, logger)
	defer services.Close()

	deps := NewDependencies(cfg, services, broadcaster, logger)

	ctx := context.WithValue(context.Background(), dependenciesKey, deps)
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
