package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/stack"
	"github.com/thoreinstein/strata/internal/stack/local"
)

var (
	stackRegisterOrchestrator string
	stackRegisterOrchCommand  string
	stackRegisterMetadata     string
	stackRegisterDatabase     string
	stackRegisterArtifact     string
	stackRegisterArtifactPath string
	stackRegisterRegistryURI  string
)

func init() {
	stackRegisterCmd.Flags().StringVar(&stackRegisterOrchestrator, "orchestrator", local.FlavorLocal,
		"orchestrator flavor: local, daemon")
	stackRegisterCmd.Flags().StringVar(&stackRegisterOrchCommand, "orchestrator-command", "",
		"service command line (daemon orchestrator only)")
	stackRegisterCmd.Flags().StringVar(&stackRegisterMetadata, "metadata-store", local.FlavorSqlite,
		"metadata store flavor: sqlite, rest")
	stackRegisterCmd.Flags().StringVar(&stackRegisterDatabase, "metadata-database", "",
		"sqlite database file (defaults to a per-component path in the data home)")
	stackRegisterCmd.Flags().StringVar(&stackRegisterArtifact, "artifact-store", local.FlavorLocal,
		"artifact store flavor: local")
	stackRegisterCmd.Flags().StringVar(&stackRegisterArtifactPath, "artifact-path", "",
		"artifact directory (defaults to a per-component path in the data home)")
	stackRegisterCmd.Flags().StringVar(&stackRegisterRegistryURI, "registry-uri", "",
		"container registry URI (omit for a stack without one)")
	stackCmd.AddCommand(stackRegisterCmd)
}

var stackRegisterCmd = &cobra.Command{
	Use:   "register NAME",
	Short: "Register a stack in the active profile",
	Long: `Compose a stack from component flavors and register it under the
effective active profile.

Registration validates the composition but allocates nothing; resources are
created by 'strata stack up'. Stack names are unique per profile.`,
	Example: `  # All-local stack
  strata stack register local

  # Orchestrator running as a background service
  strata stack register airflow --orchestrator daemon \
    --orchestrator-command "airflow standalone"

  # Stack with a container registry record
  strata stack register ci --registry-uri localhost:5000`,
	Args: cobra.ExactArgs(1),
	RunE: runStackRegister,
}

func runStackRegister(cmd *cobra.Command, args []string) error {
	name := args[0]

	scope, err := loadStackScope()
	if err != nil {
		return err
	}

	orchSettings := map[string]string{}
	if stackRegisterOrchCommand != "" {
		orchSettings["command"] = stackRegisterOrchCommand
	}
	metaSettings := map[string]string{}
	if stackRegisterDatabase != "" {
		metaSettings["database"] = stackRegisterDatabase
	}
	artSettings := map[string]string{}
	if stackRegisterArtifactPath != "" {
		artSettings["path"] = stackRegisterArtifactPath
	}

	s := &stack.Stack{
		Name:          name,
		Orchestrator:  stack.NewRecord(name+"-orchestrator", stack.RoleOrchestrator, stackRegisterOrchestrator, orchSettings),
		MetadataStore: stack.NewRecord(name+"-metadata", stack.RoleMetadataStore, stackRegisterMetadata, metaSettings),
		ArtifactStore: stack.NewRecord(name+"-artifacts", stack.RoleArtifactStore, stackRegisterArtifact, artSettings),
	}
	if stackRegisterRegistryURI != "" {
		rec := stack.NewRecord(name+"-registry", stack.RoleContainerRegistry, local.FlavorDefault, map[string]string{
			"uri": stackRegisterRegistryURI,
		})
		s.ContainerRegistry = &rec
	}

	// Surface unknown flavors at registration time rather than at 'stack up'.
	for _, rec := range s.Components() {
		if _, err := stack.Flavors.Provisioner(rec); err != nil {
			return err
		}
	}

	if err := scope.registry.Register(s); err != nil {
		if errors.Is(err, errors.ErrDuplicateName) {
			return errors.NewUserError(err, "pick another name or delete the existing stack first")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered stack %q in profile %q.\n", name, scope.profile)
	return nil
}
