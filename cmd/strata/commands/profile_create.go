package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/config"
	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/profile"
)

var (
	profileCreateStoreType string
	profileCreateStoreURL  string
)

func init() {
	profileCreateCmd.Flags().StringVar(&profileCreateStoreType, "store-type", string(profile.StoreLocal),
		"store backing the profile: local, sql, rest")
	profileCreateCmd.Flags().StringVar(&profileCreateStoreURL, "store-url", "",
		"store URL (required for sql and rest store types)")
	profileCmd.AddCommand(profileCreateCmd)
}

var profileCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new profile",
	Long: `Create a profile and persist it in the global configuration.

The name is the profile's immutable unique key. Creating a profile does not
activate it; use 'strata profile set' for that.`,
	Example: `  # Local profile (the default store type)
  strata profile create dev

  # Remote profiles need a URL
  strata profile create staging --store-type sql --store-url mysql://db/strata
  strata profile create prod --store-type rest --store-url https://strata.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileCreate,
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	storeType, err := profile.ParseStoreType(profileCreateStoreType)
	if err != nil {
		return err
	}

	gc, err := config.Instance()
	if err != nil {
		return err
	}
	if _, exists := gc.GetProfile(name); exists {
		return errors.Wrapf(errors.ErrDuplicateName, "profile %q already exists", name)
	}

	p := &profile.Profile{
		Name:      name,
		StoreType: storeType,
		StoreURL:  profileCreateStoreURL,
	}
	if err := gc.AddOrUpdateProfile(p); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created profile %q.\n", name)
	return nil
}
