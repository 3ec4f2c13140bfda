package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/errors"
)

func init() {
	profileCmd.AddCommand(profileDescribeCmd)
}

var profileDescribeCmd = &cobra.Command{
	Use:   "describe [NAME]",
	Short: "Show the properties of a profile",
	Long: `Show the properties of the named profile, or of the effective active
profile when no name is given. The effective profile is the local override
when the current directory has one, otherwise the global choice.`,
	Example: `  # Describe the effective active profile
  strata profile describe

  # Describe a specific profile
  strata profile describe staging`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfileDescribe,
}

func runProfileDescribe(cmd *cobra.Command, args []string) error {
	return runProfileDescribeWithWriter(cmd.OutOrStdout(), args)
}

func runProfileDescribeWithWriter(w io.Writer, args []string) error {
	gc, _, snap, err := snapshot()
	if err != nil {
		return err
	}

	name := snap.Profile().Name
	if len(args) == 1 {
		name = args[0]
	}

	p, ok := gc.GetProfile(name)
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "profile %q does not exist", name)
	}

	global, local := snap.ProfileFlags(name)

	fmt.Fprintf(w, "%s %s\n", headerColor.Sprint("Profile:"), p.Name)
	fmt.Fprintf(w, "%s %s\n", headerColor.Sprint("Store type:"), p.StoreType)
	fmt.Fprintf(w, "%s %s\n", headerColor.Sprint("Store URL:"), orNA(p.StoreURL))
	fmt.Fprintf(w, "%s %s\n", headerColor.Sprint("Active stack:"), orNA(p.ActiveStack))
	if tags := scopeTags(global, local); tags != "" {
		fmt.Fprintf(w, "%s %s\n", headerColor.Sprint("Active in:"), tags)
	} else {
		fmt.Fprintf(w, "%s %s\n", headerColor.Sprint("Active in:"), dimColor.Sprint("no scope"))
	}
	return nil
}
