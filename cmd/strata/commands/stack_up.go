package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/logging"
)

func init() {
	stackCmd.AddCommand(stackUpCmd)
}

var stackUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Provision the active stack",
	Long: `Provision the resources of every component of the active stack.

Provisioning is idempotent: components already holding their resources are
left alone. A failure partway through keeps what was provisioned; re-run
'stack up' to finish or 'stack down' to release everything.`,
	Example: `  strata stack up`,
	Args:    cobra.NoArgs,
	RunE:    runStackUp,
}

func runStackUp(cmd *cobra.Command, _ []string) error {
	scope, err := loadStackScope()
	if err != nil {
		return err
	}
	s, err := scope.activeStack()
	if err != nil {
		return err
	}

	logging.FromContext(cmd.Context()).Info("provisioning stack", "stack", s.Name, "profile", scope.profile)
	if err := s.Provision(); err != nil {
		if errors.Is(err, errors.ErrProvisioning) {
			return errors.NewSystemError(err,
				"re-run 'strata stack up' to finish, or 'strata stack down' to release what was provisioned")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stack %q is provisioned.\n", s.Name)
	return nil
}
