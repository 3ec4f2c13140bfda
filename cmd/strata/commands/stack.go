package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/strata/internal/activation"
	"github.com/thoreinstein/strata/internal/config"
	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/repository"
	"github.com/thoreinstein/strata/internal/stack"
)

func init() {
	rootCmd.AddCommand(stackCmd)
}

var stackCmd = &cobra.Command{
	Use:   "stack",
	Short: "Manage infrastructure stacks",
	Long: `Manage the stacks registered under the active profile.

A stack composes an orchestrator, a metadata store, an artifact store, and
optionally a container registry. Stacks are registered per profile; 'stack
up' and 'stack down' provision and release the resources of the active
stack.`,
	Example: `  # Register a stack of local components and bring it up
  strata stack register local
  strata stack set local
  strata stack up

  # Tear it down again
  strata stack down

  See Also: strata profile, strata init`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// stackScope bundles everything stack subcommands operate on: both activation
// scopes, one snapshot, and the stack registry of the effective profile.
type stackScope struct {
	gc       *config.GlobalConfig
	repo     *repository.Repository
	snap     activation.Snapshot
	registry *stack.Registry
	profile  string
}

func loadStackScope() (*stackScope, error) {
	gc, repo, snap, err := snapshot()
	if err != nil {
		return nil, err
	}
	profileName := snap.Profile().Name
	reg, err := stack.OpenRegistry(gc.StacksPath(profileName))
	if err != nil {
		return nil, err
	}
	return &stackScope{
		gc:       gc,
		repo:     repo,
		snap:     snap,
		registry: reg,
		profile:  profileName,
	}, nil
}

// activeStack resolves the effective active stack to a registered record.
func (s *stackScope) activeStack() (*stack.Stack, error) {
	name := s.snap.Stack().Name
	if name == "" {
		err := errors.Wrapf(errors.ErrNotFound, "no stack is active in profile %q", s.profile)
		return nil, errors.NewUserError(err, "activate one first: strata stack set <name>")
	}
	st, ok := s.registry.Get(name)
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound,
			"active stack %q is not registered in profile %q", name, s.profile)
	}
	return st, nil
}
