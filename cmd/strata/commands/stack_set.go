package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/errors"
)

var stackSetGlobal bool

func init() {
	stackSetCmd.Flags().BoolVarP(&stackSetGlobal, "global", "g", false,
		"activate inside the profile instead of the current directory")
	stackCmd.AddCommand(stackSetCmd)
}

var stackSetCmd = &cobra.Command{
	Use:   "set [NAME]",
	Short: "Activate a stack",
	Long: `Activate a stack of the effective profile.

With --global the choice is recorded inside the profile and applies wherever
the profile is active; without it the choice is a local override for the
current directory. Run without a name to pick a stack interactively.`,
	Example: `  # Activate for the current directory
  strata stack set local

  # Record inside the profile
  strata stack set local --global

  # Pick interactively
  strata stack set`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStackSet,
}

func runStackSet(cmd *cobra.Command, args []string) error {
	scope, err := loadStackScope()
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		name, err = pickName("stack", scope.registry.Names())
		if err != nil || name == "" {
			return err
		}
	}

	if _, ok := scope.registry.Get(name); !ok {
		err := errors.Wrapf(errors.ErrNotFound,
			"stack %q is not registered in profile %q", name, scope.profile)
		return errors.NewUserError(err, "run 'strata stack list' to see registered stacks")
	}

	if stackSetGlobal {
		if err := scope.gc.SetActiveStack(scope.profile, name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stack %q is now active in profile %q.\n", name, scope.profile)
		return nil
	}

	if _, err := scope.repo.ActivateStack(scope.gc, name); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stack %q is now active in this directory.\n", name)
	return nil
}
