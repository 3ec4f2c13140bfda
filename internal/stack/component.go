package stack

import (
	"strings"

	"github.com/google/uuid"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/profile"
)

// Role is the slot a component fills inside a stack. The set of roles is
// closed; variants within a role are distinguished by flavor.
type Role string

// Component role constants.
const (
	RoleOrchestrator      Role = "orchestrator"
	RoleMetadataStore     Role = "metadata-store"
	RoleArtifactStore     Role = "artifact-store"
	RoleContainerRegistry Role = "container-registry"
)

// RequiredRoles returns the roles every valid stack must fill, in display
// order. The container registry is optional.
func RequiredRoles() []Role {
	return []Role{RoleOrchestrator, RoleMetadataStore, RoleArtifactStore}
}

// ValidRole reports whether the role is one of the closed set.
func ValidRole(role Role) bool {
	switch role {
	case RoleOrchestrator, RoleMetadataStore, RoleArtifactStore, RoleContainerRegistry:
		return true
	}
	return false
}

// Record is a named component instance: a role tag, the flavor implementing
// it, and the flavor-specific settings. Records are plain values; the
// resources they describe are managed through the flavor's Provisioner.
//
// Components are looked up by name and may be shared between stacks.
type Record struct {
	ID       string            `mapstructure:"id" yaml:"id"`
	Name     string            `mapstructure:"name" yaml:"name"`
	Role     Role              `mapstructure:"role" yaml:"role"`
	Flavor   string            `mapstructure:"flavor" yaml:"flavor"`
	Settings map[string]string `mapstructure:"settings" yaml:"settings,omitempty"`
}

// NewRecord creates a component record with a fresh identity.
func NewRecord(name string, role Role, flavor string, settings map[string]string) Record {
	return Record{
		ID:       uuid.NewString(),
		Name:     name,
		Role:     role,
		Flavor:   flavor,
		Settings: cloneSettings(settings),
	}
}

// CopyWith produces a value copy of the record with the given setting
// overrides applied. The copy gets a fresh identity: mutating or
// provisioning it never aliases the source record. An empty name keeps the
// source name.
func (r Record) CopyWith(name string, overrides map[string]string) Record {
	c := r
	c.ID = uuid.NewString()
	if name != "" {
		c.Name = name
	}
	c.Settings = cloneSettings(r.Settings)
	for k, v := range overrides {
		if c.Settings == nil {
			c.Settings = make(map[string]string)
		}
		c.Settings[k] = v
	}
	return c
}

// Setting returns a settings value, or the fallback when unset or blank.
func (r Record) Setting(key, fallback string) string {
	if v, ok := r.Settings[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// Validate checks the record for structural validity.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.Wrap(errors.ErrValidation, "component name must not be empty")
	}
	if !profile.ValidName(r.Name) {
		return errors.Wrapf(errors.ErrValidation, "component name %q must be lowercase alphanumeric with hyphens, starting with a letter", r.Name)
	}
	if !ValidRole(r.Role) {
		return errors.Wrapf(errors.ErrValidation, "component %q has unknown role %q", r.Name, r.Role)
	}
	if strings.TrimSpace(r.Flavor) == "" {
		return errors.Wrapf(errors.ErrValidation, "component %q has no flavor", r.Name)
	}
	return nil
}

func cloneSettings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
