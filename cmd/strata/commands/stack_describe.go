package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/stack"
)

func init() {
	stackCmd.AddCommand(stackDescribeCmd)
}

var stackDescribeCmd = &cobra.Command{
	Use:   "describe [NAME]",
	Short: "Show the components of a stack",
	Long: `Show the components of the named stack with their per-component
provisioned status, or of the effective active stack when no name is given.`,
	Example: `  # Describe the active stack
  strata stack describe

  # Describe a specific stack
  strata stack describe local`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStackDescribe,
}

func runStackDescribe(cmd *cobra.Command, args []string) error {
	return runStackDescribeWithWriter(cmd.OutOrStdout(), args)
}

func runStackDescribeWithWriter(w io.Writer, args []string) error {
	scope, err := loadStackScope()
	if err != nil {
		return err
	}

	var s *stack.Stack
	if len(args) == 1 {
		var ok bool
		s, ok = scope.registry.Get(args[0])
		if !ok {
			return errors.Wrapf(errors.ErrNotFound,
				"stack %q is not registered in profile %q", args[0], scope.profile)
		}
	} else {
		s, err = scope.activeStack()
		if err != nil {
			return err
		}
	}

	statuses, state, err := s.Status()
	if err != nil {
		return err
	}
	global, local := scope.snap.StackFlags(s.Name)

	fmt.Fprintf(w, "%s %s\n", headerColor.Sprint("Stack:"), s.Name)
	fmt.Fprintf(w, "%s %s\n", headerColor.Sprint("Profile:"), scope.profile)
	fmt.Fprintf(w, "%s %s\n", headerColor.Sprint("State:"), state)
	if tags := scopeTags(global, local); tags != "" {
		fmt.Fprintf(w, "%s %s\n", headerColor.Sprint("Active in:"), tags)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", headerColor.Sprint("ROLE\tNAME\tFLAVOR\tPROVISIONED"))
	for _, st := range statuses {
		provisioned := fmt.Sprintf("%t", st.Provisioned)
		if !st.Managed {
			provisioned = dimColor.Sprint("n/a")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", st.Role, st.Name, st.Flavor, provisioned)
	}
	return tw.Flush()
}
