package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage configuration profiles",
	Long: `Manage named configuration profiles.

A profile points at a store holding pipeline state: the local filesystem, a
SQL database, or a REST server. Remote store types (sql, rest) require a
store URL. Exactly one profile is active globally; a repository directory can
override it locally.`,
	Example: `  # Create a profile backed by a SQL store
  strata profile create staging --store-type sql --store-url mysql://db/strata

  # Activate it for the whole user account
  strata profile set staging --global

  # Or just for the current directory
  strata profile set staging

  See Also: strata init, strata stack`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}
