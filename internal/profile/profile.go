// Package profile defines the configuration profile record: a named pointer
// at a metadata backend plus the name of the stack active within it.
package profile

import (
	"regexp"
	"strings"

	"github.com/thoreinstein/strata/internal/errors"
)

// namePattern validates profile names.
// Names must be lowercase alphanumeric with hyphens, starting with a letter.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidName reports whether name is an acceptable profile or stack name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// StoreType identifies the kind of metadata backend a profile points at.
type StoreType string

// Store type constants.
const (
	// StoreLocal keeps metadata in files under the profile's state directory.
	StoreLocal StoreType = "local"

	// StoreSQL keeps metadata in a SQL database reachable at the store URL.
	StoreSQL StoreType = "sql"

	// StoreREST talks to a remote metadata server at the store URL.
	StoreREST StoreType = "rest"
)

// StoreTypes returns all supported store types in display order.
func StoreTypes() []StoreType {
	return []StoreType{StoreLocal, StoreSQL, StoreREST}
}

// ParseStoreType converts a user-supplied string into a StoreType.
func ParseStoreType(s string) (StoreType, error) {
	switch StoreType(strings.ToLower(strings.TrimSpace(s))) {
	case StoreLocal:
		return StoreLocal, nil
	case StoreSQL:
		return StoreSQL, nil
	case StoreREST:
		return StoreREST, nil
	default:
		return "", errors.Wrapf(errors.ErrValidation, "unknown store type %q (expected local, sql, or rest)", s)
	}
}

// Remote reports whether the store type requires a URL.
func (t StoreType) Remote() bool {
	return t == StoreSQL || t == StoreREST
}

// Profile is a named record describing a metadata backend and the stack
// currently active inside that profile. Name is the unique key and is
// immutable after creation; ActiveStack is mutable.
type Profile struct {
	Name        string    `mapstructure:"name" yaml:"name"`
	StoreType   StoreType `mapstructure:"store_type" yaml:"store_type"`
	StoreURL    string    `mapstructure:"store_url" yaml:"store_url,omitempty"`
	ActiveStack string    `mapstructure:"active_stack" yaml:"active_stack,omitempty"`
}

// New creates a local-store profile with the given name.
func New(name string) *Profile {
	return &Profile{
		Name:      name,
		StoreType: StoreLocal,
	}
}

// Validate checks the profile record for structural validity.
// All failures are marked with errors.ErrValidation.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.Wrap(errors.ErrValidation, "profile name must not be empty")
	}
	if !ValidName(p.Name) {
		return errors.Wrapf(errors.ErrValidation, "profile name %q must be lowercase alphanumeric with hyphens, starting with a letter", p.Name)
	}
	switch p.StoreType {
	case StoreLocal, StoreSQL, StoreREST:
	default:
		return errors.Wrapf(errors.ErrValidation, "profile %q has unknown store type %q", p.Name, p.StoreType)
	}
	if p.StoreType.Remote() && strings.TrimSpace(p.StoreURL) == "" {
		return errors.Wrapf(errors.ErrValidation, "profile %q uses store type %q which requires a store URL", p.Name, p.StoreType)
	}
	return nil
}
