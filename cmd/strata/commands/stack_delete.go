package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/errors"
)

func init() {
	stackCmd.AddCommand(stackDeleteCmd)
}

var stackDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a stack from the active profile",
	Long: `Delete a registered stack.

Active stacks and stacks that still hold provisioned resources cannot be
deleted; deactivate or 'strata stack down' first.`,
	Example: `  strata stack delete local`,
	Args:    cobra.ExactArgs(1),
	RunE:    runStackDelete,
}

func runStackDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	scope, err := loadStackScope()
	if err != nil {
		return err
	}

	var activeNames []string
	if scope.snap.GlobalStack != "" {
		activeNames = append(activeNames, scope.snap.GlobalStack)
	}
	if scope.snap.LocalStack != "" {
		activeNames = append(activeNames, scope.snap.LocalStack)
	}

	if err := scope.registry.Delete(name, activeNames); err != nil {
		if errors.Is(err, errors.ErrActiveResource) {
			return errors.NewUserError(err,
				"deactivate it (strata stack set <other>) or tear it down (strata stack down) first")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted stack %q from profile %q.\n", name, scope.profile)
	return nil
}
