package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/logging"
)

func init() {
	stackCmd.AddCommand(stackDownCmd)
}

var stackDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Deprovision the active stack",
	Long: `Release the resources of every component of the active stack.

Teardown sweeps all components even when one of them fails, so a single
stubborn resource never blocks releasing the rest.`,
	Example: `  strata stack down`,
	Args:    cobra.NoArgs,
	RunE:    runStackDown,
}

func runStackDown(cmd *cobra.Command, _ []string) error {
	scope, err := loadStackScope()
	if err != nil {
		return err
	}
	s, err := scope.activeStack()
	if err != nil {
		return err
	}

	logging.FromContext(cmd.Context()).Info("deprovisioning stack", "stack", s.Name, "profile", scope.profile)
	if err := s.Deprovision(); err != nil {
		if errors.Is(err, errors.ErrProvisioning) {
			return errors.NewSystemError(err, "re-run 'strata stack down' to retry the failed component")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stack %q is deprovisioned.\n", s.Name)
	return nil
}
