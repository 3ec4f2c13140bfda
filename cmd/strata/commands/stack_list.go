package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var stackListJSON bool

func init() {
	stackListCmd.Flags().BoolVar(&stackListJSON, "json", false, "Output in JSON format")
	stackCmd.AddCommand(stackListCmd)
}

var stackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stacks of the active profile",
	Example: `  strata stack list

  # Output as JSON
  strata stack list --json`,
	Args: cobra.NoArgs,
	RunE: runStackList,
}

// stackInfoJSON represents a stack in JSON output format.
type stackInfoJSON struct {
	Name           string `json:"name"`
	State          string `json:"state"`
	Components     int    `json:"components"`
	GloballyActive bool   `json:"globally_active"`
	LocallyActive  bool   `json:"locally_active"`
}

func runStackList(cmd *cobra.Command, _ []string) error {
	return runStackListWithWriter(cmd.OutOrStdout())
}

// runStackListWithWriter allows injecting a writer for testing.
func runStackListWithWriter(w io.Writer) error {
	scope, err := loadStackScope()
	if err != nil {
		return err
	}

	names := scope.registry.Names()
	infos := make([]stackInfoJSON, 0, len(names))
	for _, name := range names {
		s, _ := scope.registry.Get(name)
		_, state, err := s.Status()
		if err != nil {
			return err
		}
		global, local := scope.snap.StackFlags(name)
		infos = append(infos, stackInfoJSON{
			Name:           name,
			State:          string(state),
			Components:     len(s.Components()),
			GloballyActive: global,
			LocallyActive:  local,
		})
	}

	if stackListJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	if len(infos) == 0 {
		fmt.Fprintf(w, "No stacks registered in profile %q\n", scope.profile)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", headerColor.Sprint("ACTIVE\tNAME\tSTATE\tCOMPONENTS"))
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
			scopeTags(info.GloballyActive, info.LocallyActive),
			info.Name,
			info.State,
			info.Components,
		)
	}
	return tw.Flush()
}
