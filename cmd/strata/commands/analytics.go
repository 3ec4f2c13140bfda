package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/config"
)

func init() {
	analyticsCmd.AddCommand(analyticsGetCmd)
	analyticsCmd.AddCommand(analyticsOptInCmd)
	analyticsCmd.AddCommand(analyticsOptOutCmd)
	rootCmd.AddCommand(analyticsCmd)
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Manage usage analytics preferences",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var analyticsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show whether analytics are enabled",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		gc, err := config.Instance()
		if err != nil {
			return err
		}
		if gc.AnalyticsOptIn {
			fmt.Fprintln(cmd.OutOrStdout(), "Analytics are currently enabled.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Analytics are currently disabled.")
		}
		return nil
	},
}

var analyticsOptInCmd = &cobra.Command{
	Use:   "opt-in",
	Short: "Enable analytics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return setAnalytics(cmd, true)
	},
}

var analyticsOptOutCmd = &cobra.Command{
	Use:   "opt-out",
	Short: "Disable analytics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return setAnalytics(cmd, false)
	},
}

func setAnalytics(cmd *cobra.Command, optIn bool) error {
	gc, err := config.Instance()
	if err != nil {
		return err
	}
	if err := gc.SetAnalyticsOptIn(optIn); err != nil {
		return err
	}
	if optIn {
		fmt.Fprintln(cmd.OutOrStdout(), "Opted in to analytics.")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Opted out of analytics.")
	}
	return nil
}
