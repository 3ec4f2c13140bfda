// Package commands implements the CLI commands for strata.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/activation"
	"github.com/thoreinstein/strata/internal/config"
	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/logging"
	"github.com/thoreinstein/strata/internal/repository"
	_ "github.com/thoreinstein/strata/internal/stack/local"
)

// version is set at build time via ldflags.
// Default to a development version for local builds.
const version = "0.1.0"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress log output (command results and errors still print)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("strata version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Manage configuration profiles and infrastructure stacks",
	Long: `strata manages named configuration profiles and the infrastructure
stacks registered under them.

A profile points at a store (local filesystem, a SQL database, or a REST
server) and owns a registry of stacks. A stack composes an orchestrator, a
metadata store, an artifact store, and optionally a container registry, and
can be provisioned and torn down as a unit.

Activation is two-scoped: a profile or stack can be made active globally
(for the user) or locally (for the current directory, anchored by a .strata
marker). Local choices win over global ones.`,
	Example: `  # Create and activate a profile
  strata profile create staging --store-type sql --store-url mysql://db/strata
  strata profile set staging --global

  # Register and bring up a stack
  strata stack register local
  strata stack set local
  strata stack up

  See Also: strata init, strata profile, strata stack`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	if quiet {
		logger := logging.NewDiscard()
		slog.SetDefault(logger)
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(logging.NewContext(ctx, logger))
		return nil
	}

	v := verbosity

	// CLI flags take precedence, then the env var, then the persisted
	// default from `strata logging set-verbosity`.
	if v == 0 {
		if val, ok := os.LookupEnv("STRATA_DEBUG"); ok {
			switch val {
			case "1", "true":
				v = 2 // Debug
			case "2":
				v = 3 // Trace
			}
		}
	}
	level := logging.LevelFromVerbosity(v)
	if v == 0 {
		if gc, err := config.Instance(); err == nil && gc.LoggingVerbosity != "" {
			if persisted, ok := logging.ParseLevel(gc.LoggingVerbosity); ok {
				level = persisted
			}
		}
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// scopes loads the two activation scopes every command operates on. The
// repository scope is opened from the current working directory.
func scopes() (*config.GlobalConfig, *repository.Repository, error) {
	gc, err := config.Instance()
	if err != nil {
		return nil, nil, err
	}
	repo, err := repository.Instance()
	if err != nil {
		return nil, nil, err
	}
	return gc, repo, nil
}

// snapshot loads both scopes and takes one activation snapshot, so a command
// never observes two different activation states.
func snapshot() (*config.GlobalConfig, *repository.Repository, activation.Snapshot, error) {
	gc, repo, err := scopes()
	if err != nil {
		return nil, nil, activation.Snapshot{}, err
	}
	return gc, repo, activation.Take(gc, repo), nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
