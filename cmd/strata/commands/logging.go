package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/config"
	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/logging"
)

func init() {
	loggingCmd.AddCommand(loggingSetVerbosityCmd)
	rootCmd.AddCommand(loggingCmd)
}

var loggingCmd = &cobra.Command{
	Use:   "logging",
	Short: "Manage logging preferences",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var loggingSetVerbosityCmd = &cobra.Command{
	Use:   "set-verbosity LEVEL",
	Short: "Set the default log level",
	Long: `Persist the default log level used when no -v flag is given.

Accepted levels: trace, debug, info, warn, error.`,
	Example: `  strata logging set-verbosity debug`,
	Args:    cobra.ExactArgs(1),
	RunE:    runLoggingSetVerbosity,
}

func runLoggingSetVerbosity(cmd *cobra.Command, args []string) error {
	level := strings.ToLower(strings.TrimSpace(args[0]))
	if _, ok := logging.ParseLevel(level); !ok {
		err := errors.Wrapf(errors.ErrValidation, "unknown log level %q", args[0])
		return errors.NewUserError(err,
			fmt.Sprintf("valid levels: %s", strings.Join(logging.LevelNames(), ", ")))
	}

	gc, err := config.Instance()
	if err != nil {
		return err
	}
	if err := gc.SetLoggingVerbosity(level); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Default log level set to %s.\n", level)
	return nil
}
