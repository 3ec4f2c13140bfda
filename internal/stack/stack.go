// Package stack models named compositions of infrastructure components (an
// orchestrator, a metadata store, an artifact store, and an optional
// container registry) together with their provisioning lifecycle and the
// per-profile stack registry.
package stack

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/profile"
)

// State is the provisioning lifecycle phase of a stack.
type State string

// Lifecycle states. Provisioning and deprovisioning are transitional and
// only observable while an operation is in flight.
const (
	StateUnprovisioned  State = "unprovisioned"
	StateProvisioning   State = "provisioning"
	StateProvisioned    State = "provisioned"
	StateDeprovisioning State = "deprovisioning"

	// StatePartial is the derived state after a provisioning failure or an
	// interrupted teardown: some components hold resources, others do not.
	StatePartial State = "partially-provisioned"
)

// Stack is a named composition of exactly one orchestrator, one metadata
// store, one artifact store, and zero-or-one container registry. The stack
// owns its lifecycle but not its components: records may be shared between
// stacks.
type Stack struct {
	Name              string  `mapstructure:"name" yaml:"name"`
	Orchestrator      Record  `mapstructure:"orchestrator" yaml:"orchestrator"`
	MetadataStore     Record  `mapstructure:"metadata_store" yaml:"metadata_store"`
	ArtifactStore     Record  `mapstructure:"artifact_store" yaml:"artifact_store"`
	ContainerRegistry *Record `mapstructure:"container_registry" yaml:"container_registry,omitempty"`
}

// Components returns the stack's component records in role order, including
// the container registry only when present.
func (s *Stack) Components() []Record {
	out := []Record{s.Orchestrator, s.MetadataStore, s.ArtifactStore}
	if s.ContainerRegistry != nil {
		out = append(out, *s.ContainerRegistry)
	}
	return out
}

// Validate checks that the stack is well-formed: a valid name, all required
// component slots filled, and every record carrying the role of its slot.
func (s *Stack) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.Wrap(errors.ErrValidation, "stack name must not be empty")
	}
	if !profile.ValidName(s.Name) {
		return errors.Wrapf(errors.ErrValidation, "stack name %q must be lowercase alphanumeric with hyphens, starting with a letter", s.Name)
	}

	slots := []struct {
		rec  Record
		role Role
	}{
		{s.Orchestrator, RoleOrchestrator},
		{s.MetadataStore, RoleMetadataStore},
		{s.ArtifactStore, RoleArtifactStore},
	}
	for _, slot := range slots {
		if err := slot.rec.Validate(); err != nil {
			return err
		}
		if slot.rec.Role != slot.role {
			return errors.Wrapf(errors.ErrValidation,
				"stack %q has component %q with role %q in its %s slot", s.Name, slot.rec.Name, slot.rec.Role, slot.role)
		}
	}
	if s.ContainerRegistry != nil {
		if err := s.ContainerRegistry.Validate(); err != nil {
			return err
		}
		if s.ContainerRegistry.Role != RoleContainerRegistry {
			return errors.Wrapf(errors.ErrValidation,
				"stack %q has component %q with role %q in its container-registry slot", s.Name, s.ContainerRegistry.Name, s.ContainerRegistry.Role)
		}
	}
	return nil
}

// ComponentStatus is the provisioned/unprovisioned status of one component.
// Managed is false for components that have no external resources; their
// Provisioned flag is vacuously true and ignored when deriving stack state.
type ComponentStatus struct {
	Name        string
	Role        Role
	Flavor      string
	Managed     bool
	Provisioned bool
}

// Status reports the per-component provisioned status and the derived stack
// state, using the process-wide flavor registry. Partial success is never
// masked behind a single stack-wide flag.
func (s *Stack) Status() ([]ComponentStatus, State, error) {
	return s.StatusWith(Flavors)
}

// StatusWith is Status against an explicit flavor registry.
func (s *Stack) StatusWith(reg *FlavorRegistry) ([]ComponentStatus, State, error) {
	var statuses []ComponentStatus
	provisioned, unprovisioned := 0, 0

	for _, rec := range s.Components() {
		p, err := reg.Provisioner(rec)
		if err != nil {
			return nil, StateUnprovisioned, err
		}
		up, err := p.Provisioned()
		if err != nil {
			return nil, StateUnprovisioned, errors.Wrapf(err, "checking component %q", rec.Name)
		}
		managed := true
		if rf, ok := p.(ResourceFree); ok && rf.ResourceFree() {
			managed = false
		}
		statuses = append(statuses, ComponentStatus{
			Name:        rec.Name,
			Role:        rec.Role,
			Flavor:      rec.Flavor,
			Managed:     managed,
			Provisioned: up,
		})
		if !managed {
			continue
		}
		if up {
			provisioned++
		} else {
			unprovisioned++
		}
	}

	switch {
	case provisioned == 0 && unprovisioned == 0:
		// Nothing manages resources; there is nothing to hold.
		return statuses, StateUnprovisioned, nil
	case unprovisioned == 0:
		return statuses, StateProvisioned, nil
	case provisioned == 0:
		return statuses, StateUnprovisioned, nil
	default:
		return statuses, StatePartial, nil
	}
}

// Provisioned reports whether every component holds its resources.
func (s *Stack) Provisioned() (bool, error) {
	return s.ProvisionedWith(Flavors)
}

// ProvisionedWith is Provisioned against an explicit flavor registry.
func (s *Stack) ProvisionedWith(reg *FlavorRegistry) (bool, error) {
	_, state, err := s.StatusWith(reg)
	if err != nil {
		return false, err
	}
	return state == StateProvisioned, nil
}

// Provision idempotently ensures every component's resources exist and are
// running. Calling it on an already-provisioned stack is a no-op, not an
// error.
//
// A failure partway through leaves the per-component state as it is and is
// reported, never silently swallowed: the returned error is marked with
// ErrProvisioning, names the failing component, and carries the partial
// status. No automatic rollback is attempted because component provisioning
// is not guaranteed to be atomically reversible; the caller retries or
// explicitly deprovisions to get back to a clean state.
func (s *Stack) Provision() error {
	return s.ProvisionWith(Flavors)
}

// ProvisionWith is Provision against an explicit flavor registry.
func (s *Stack) ProvisionWith(reg *FlavorRegistry) error {
	var done []string
	for _, rec := range s.Components() {
		p, err := reg.Provisioner(rec)
		if err != nil {
			return err
		}
		if err := p.Provision(); err != nil {
			return errors.Mark(
				errors.Wrapf(err, "provisioning component %q of stack %q (components provisioned before the failure: %s)",
					rec.Name, s.Name, partialDetail(done)),
				errors.ErrProvisioning)
		}
		done = append(done, fmt.Sprintf("%s (%s)", rec.Name, rec.Role))
	}
	return nil
}

// Deprovision idempotently releases every component's resources. Calling it
// on a never-provisioned stack is a no-op. Teardown continues across
// components even when one fails, so a single stubborn resource does not
// block releasing the rest; the first failure is reported after the sweep.
func (s *Stack) Deprovision() error {
	return s.DeprovisionWith(Flavors)
}

// DeprovisionWith is Deprovision against an explicit flavor registry.
func (s *Stack) DeprovisionWith(reg *FlavorRegistry) error {
	var firstErr error
	for _, rec := range s.Components() {
		p, err := reg.Provisioner(rec)
		if err != nil {
			return err
		}
		if err := p.Deprovision(); err != nil && firstErr == nil {
			firstErr = errors.Mark(
				errors.Wrapf(err, "deprovisioning component %q of stack %q", rec.Name, s.Name),
				errors.ErrProvisioning)
		}
	}
	return firstErr
}

func partialDetail(done []string) string {
	if len(done) == 0 {
		return "none"
	}
	return strings.Join(done, ", ")
}
