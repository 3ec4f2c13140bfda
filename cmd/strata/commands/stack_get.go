package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	stackCmd.AddCommand(stackGetCmd)
}

var stackGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the active stack",
	Args:  cobra.NoArgs,
	RunE:  runStackGet,
}

func runStackGet(cmd *cobra.Command, _ []string) error {
	scope, err := loadStackScope()
	if err != nil {
		return err
	}

	s := scope.snap.Stack()
	if s.Name == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "No stack is active in profile %q.\n", scope.profile)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (active %s)\n", s.Name, scopeTags(s.GloballyActive, s.LocallyActive))
	return nil
}
