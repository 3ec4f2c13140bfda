package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	profileCmd.AddCommand(profileGetCmd)
}

var profileGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the active profile",
	Long: `Show the effective active profile and the scope it comes from.

The local override of the current directory wins over the global choice.`,
	Args: cobra.NoArgs,
	RunE: runProfileGet,
}

func runProfileGet(cmd *cobra.Command, _ []string) error {
	_, _, snap, err := snapshot()
	if err != nil {
		return err
	}

	p := snap.Profile()
	fmt.Fprintf(cmd.OutOrStdout(), "%s (active %s)\n", p.Name, scopeTags(p.GloballyActive, p.LocallyActive))
	return nil
}
