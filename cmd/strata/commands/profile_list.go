package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var profileListJSON bool

func init() {
	profileListCmd.Flags().BoolVar(&profileListJSON, "json", false, "Output in JSON format")
	profileCmd.AddCommand(profileListCmd)
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Long: `List all profiles known to the global configuration.

The ACTIVE column marks the scopes in which a profile is active: "global"
for the user-wide choice, "local" for the override of the current directory.`,
	Example: `  strata profile list

  # Output as JSON
  strata profile list --json`,
	Args: cobra.NoArgs,
	RunE: runProfileList,
}

// profileInfoJSON represents a profile in JSON output format.
type profileInfoJSON struct {
	Name           string `json:"name"`
	StoreType      string `json:"store_type"`
	StoreURL       string `json:"store_url,omitempty"`
	ActiveStack    string `json:"active_stack,omitempty"`
	GloballyActive bool   `json:"globally_active"`
	LocallyActive  bool   `json:"locally_active"`
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	return runProfileListWithWriter(cmd.OutOrStdout())
}

// runProfileListWithWriter allows injecting a writer for testing.
func runProfileListWithWriter(w io.Writer) error {
	gc, _, snap, err := snapshot()
	if err != nil {
		return err
	}

	infos := make([]profileInfoJSON, 0, len(gc.Profiles))
	for _, name := range gc.ProfileNames() {
		p, _ := gc.GetProfile(name)
		global, local := snap.ProfileFlags(name)
		infos = append(infos, profileInfoJSON{
			Name:           p.Name,
			StoreType:      string(p.StoreType),
			StoreURL:       p.StoreURL,
			ActiveStack:    p.ActiveStack,
			GloballyActive: global,
			LocallyActive:  local,
		})
	}

	if profileListJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	if len(infos) == 0 {
		fmt.Fprintln(w, "No profiles configured")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", headerColor.Sprint("ACTIVE\tNAME\tSTORE TYPE\tSTORE URL\tACTIVE STACK"))
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			scopeTags(info.GloballyActive, info.LocallyActive),
			info.Name,
			info.StoreType,
			orNA(truncate(info.StoreURL, 48)),
			orNA(info.ActiveStack),
		)
	}
	return tw.Flush()
}
