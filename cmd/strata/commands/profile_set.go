package commands

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/stack"
)

var profileSetGlobal bool

func init() {
	profileSetCmd.Flags().BoolVarP(&profileSetGlobal, "global", "g", false,
		"activate for the whole user account instead of the current directory")
	profileCmd.AddCommand(profileSetCmd)
}

var profileSetCmd = &cobra.Command{
	Use:   "set [NAME]",
	Short: "Activate a profile",
	Long: `Activate a profile globally (--global) or for the current directory.

Local activation anchors the choice to the repository of the current
directory, initializing it when needed, and takes precedence over the global
choice. Run without a name to pick a profile interactively.

If the new profile's state cannot be loaded, the previous activation is
restored and the failure is reported.`,
	Example: `  # Activate for the current directory
  strata profile set staging

  # Activate for the whole user account
  strata profile set staging --global

  # Pick interactively
  strata profile set`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfileSet,
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	gc, repo, snap, err := snapshot()
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		name, err = pickName("profile", gc.ProfileNames())
		if err != nil || name == "" {
			return err
		}
	}

	current := snap.GlobalProfile
	if !profileSetGlobal {
		current = snap.LocalProfile
	}
	if name == current {
		fmt.Fprintf(cmd.OutOrStdout(), "Profile %q is already active.\n", name)
		return nil
	}

	var previous string
	if profileSetGlobal {
		previous, err = gc.ActivateProfile(name)
	} else {
		previous, err = repo.ActivateProfile(gc, name)
	}
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NewUserError(err, "run 'strata profile list' to see known profiles")
		}
		return err
	}

	// Verify the new profile's stack registry loads before committing to it;
	// a corrupt registry triggers an explicit compensating reactivation.
	if _, err := stack.OpenRegistry(gc.StacksPath(name)); err != nil {
		var restoreErr error
		switch {
		case profileSetGlobal:
			_, restoreErr = gc.ActivateProfile(previous)
		case previous != "":
			_, restoreErr = repo.ActivateProfile(gc, previous)
		default:
			// No earlier override existed; restoring means clearing the one
			// just written.
			restoreErr = repo.DeactivateProfile()
		}
		if restoreErr != nil {
			return errors.Wrapf(err, "restoring the previous activation also failed: %v", restoreErr)
		}
		if !profileSetGlobal && previous == "" {
			return errors.Wrapf(err, "loading state of profile %q, local override cleared", name)
		}
		return errors.Wrapf(err, "loading state of profile %q, previous profile %q reactivated", name, previous)
	}

	scope := "locally"
	if profileSetGlobal {
		scope = "globally"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Profile %q is now active %s.\n", name, scope)
	return nil
}

// pickName runs an interactive fuzzy selection over names. An aborted
// selection returns an empty name without error.
func pickName(kind string, names []string) (string, error) {
	if len(names) == 0 {
		return "", errors.Wrapf(errors.ErrNotFound, "no %ss registered", kind)
	}

	idx, err := fuzzyfinder.Find(names, func(i int) string {
		return names[i]
	})
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", errors.Wrapf(err, "interactive %s selection failed", kind)
	}
	return names[idx], nil
}
