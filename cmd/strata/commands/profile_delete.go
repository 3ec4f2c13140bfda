package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/errors"
)

func init() {
	profileCmd.AddCommand(profileDeleteCmd)
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a profile",
	Long: `Delete a profile and its state (stack registry, local store files).

A profile that is active in any scope cannot be deleted; activate another
profile first.`,
	Example: `  strata profile delete staging`,
	Args:    cobra.ExactArgs(1),
	RunE:    runProfileDelete,
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	gc, _, snap, err := snapshot()
	if err != nil {
		return err
	}

	// The global configuration only guards the global scope; the local
	// override is this command's concern.
	if _, local := snap.ProfileFlags(name); local {
		err := errors.Wrapf(errors.ErrActiveResource, "profile %q is locally active in this directory", name)
		return errors.NewUserError(err, "activate another profile here first: strata profile set <name>")
	}

	if err := gc.DeleteProfile(name); err != nil {
		if errors.Is(err, errors.ErrActiveResource) {
			return errors.NewUserError(err, "activate another profile first: strata profile set <name> --global")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %q.\n", name)
	return nil
}
