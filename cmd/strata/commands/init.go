package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/repository"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the current directory as a repository",
	Long: `Create the .strata marker in the current directory.

An initialized directory can carry its own active profile and stack,
overriding the global choices for every command run inside it (or inside any
of its subdirectories).`,
	Example: `  # Initialize the current directory
  strata init

  # Then activate a profile just for this directory
  strata profile set staging

  See Also: strata profile set, strata stack set`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "resolving working directory")
	}

	repo, err := repository.InitDir(cwd)
	if err != nil {
		if errors.Is(err, errors.ErrDuplicateName) {
			return errors.NewUserError(err, "this directory is already a strata repository")
		}
		return err
	}

	// Later commands in this process see the freshly initialized scope.
	repository.Restore(repo)

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized strata repository at %s\n", repo.Root())
	return nil
}
