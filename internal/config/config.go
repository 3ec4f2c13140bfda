// Package config provides the process-wide strata configuration: the set of
// known profiles, the globally active profile, and the analytics opt-in flag.
package config

import (
	"os"
	"sort"

	"github.com/spf13/viper"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/paths"
	"github.com/thoreinstein/strata/internal/profile"
	"github.com/thoreinstein/strata/pkg/fileutil"
)

// CurrentVersion is the on-disk schema version written by this build.
const CurrentVersion = 1

// DefaultProfileName is the profile seeded into a fresh configuration.
const DefaultProfileName = "default"

// GlobalConfig holds the process-wide configuration. It is the exclusive
// owner of profile records: a profile cannot outlive the configuration
// without being persisted.
//
// GlobalConfig is intended for single-caller use (one CLI invocation or one
// test at a time). Concurrent writers to the same persisted file are
// last-writer-wins; this is a documented limitation of the persistence layer.
type GlobalConfig struct {
	Version           int                         `mapstructure:"version" yaml:"version"`
	AnalyticsOptIn    bool                        `mapstructure:"analytics_opt_in" yaml:"analytics_opt_in"`
	LoggingVerbosity  string                      `mapstructure:"logging_verbosity" yaml:"logging_verbosity,omitempty"`
	ActiveProfileName string                      `mapstructure:"active_profile" yaml:"active_profile,omitempty"`
	Profiles          map[string]*profile.Profile `mapstructure:"profiles" yaml:"profiles"`

	// root is the config root captured at construction time. The
	// STRATA_CONFIG_PATH environment variable is consumed exactly once,
	// so a singleton keeps writing where it was loaded from even if the
	// environment changes afterwards.
	root string `mapstructure:"-" yaml:"-"`
}

// New constructs a GlobalConfig anchored at the given config root, loading
// the persisted state if present and seeding a default local profile
// otherwise. The seeded state is persisted immediately.
func New(root string) (*GlobalConfig, error) {
	gc := &GlobalConfig{
		Version:        CurrentVersion,
		AnalyticsOptIn: true,
		Profiles:       make(map[string]*profile.Profile),
		root:           root,
	}

	path := paths.GlobalConfigPath(root)
	if _, err := os.Stat(path); err == nil {
		if err := gc.load(path); err != nil {
			return nil, err
		}
		return gc, nil
	}

	// Fresh configuration: seed and activate the default profile.
	def := profile.New(DefaultProfileName)
	gc.Profiles[def.Name] = def
	gc.ActiveProfileName = def.Name
	if err := gc.save(); err != nil {
		return nil, err
	}
	return gc, nil
}

// load reads the persisted configuration from path.
func (gc *GlobalConfig) load(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrap(err, "reading global configuration")
	}
	if err := v.Unmarshal(gc); err != nil {
		return errors.Wrap(err, "unmarshaling global configuration")
	}
	if gc.Profiles == nil {
		gc.Profiles = make(map[string]*profile.Profile)
	}
	// Profile names are the map keys; keep the embedded name in sync for
	// records written by hand.
	for name, p := range gc.Profiles {
		if p.Name == "" {
			p.Name = name
		}
	}
	return nil
}

// save persists the configuration atomically: either the full write succeeds
// or the previously persisted state remains observable.
func (gc *GlobalConfig) save() error {
	if err := paths.EnsureDir(gc.root, 0); err != nil {
		return errors.Wrap(err, "creating config root")
	}
	path := paths.GlobalConfigPath(gc.root)
	if err := fileutil.AtomicWriteYAMLWithPerm(path, gc, 0o600); err != nil {
		return errors.Wrap(err, "writing global configuration")
	}
	return nil
}

// ConfigRoot returns the config root this instance was constructed with.
func (gc *GlobalConfig) ConfigRoot() string {
	return gc.root
}

// ProfileStateDir returns the state directory owned by the named profile
// (stack registry, local store files).
func (gc *GlobalConfig) ProfileStateDir(name string) string {
	return paths.ProfileDir(gc.root, name)
}

// StacksPath returns the stack registry file for the named profile.
func (gc *GlobalConfig) StacksPath(name string) string {
	return paths.StacksPath(gc.root, name)
}

// GetProfile looks up a profile by name. Lookups never fail; absence is
// reported through the second return value.
func (gc *GlobalConfig) GetProfile(name string) (*profile.Profile, bool) {
	p, ok := gc.Profiles[name]
	return p, ok
}

// ProfileNames returns all known profile names in sorted order.
func (gc *GlobalConfig) ProfileNames() []string {
	names := make([]string, 0, len(gc.Profiles))
	for name := range gc.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddOrUpdateProfile inserts or replaces a profile by name. Overwrite is the
// documented mechanism for editing, so replacing an existing entry is not an
// error. The record is validated before any persisted mutation occurs.
func (gc *GlobalConfig) AddOrUpdateProfile(p *profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	previous, existed := gc.Profiles[p.Name]
	gc.Profiles[p.Name] = p
	if err := gc.save(); err != nil {
		if existed {
			gc.Profiles[p.Name] = previous
		} else {
			delete(gc.Profiles, p.Name)
		}
		return err
	}
	return nil
}

// DeleteProfile removes a profile by name. It fails with ErrNotFound if the
// profile does not exist and with ErrActiveResource if the profile is the
// globally active one. All checks happen before any mutation; there are no
// partial deletes. Checking repository-local activity is the caller's
// responsibility.
func (gc *GlobalConfig) DeleteProfile(name string) error {
	p, ok := gc.Profiles[name]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "profile %q does not exist", name)
	}
	if name == gc.ActiveProfileName {
		return errors.Wrapf(errors.ErrActiveResource, "profile %q is the globally active profile", name)
	}

	delete(gc.Profiles, name)
	if err := gc.save(); err != nil {
		gc.Profiles[name] = p
		return err
	}

	// The profile's state directory (stack registry, local store files) is
	// owned by the profile record and goes with it.
	if err := os.RemoveAll(gc.ProfileStateDir(name)); err != nil {
		return errors.Wrap(err, "removing profile state directory")
	}
	return nil
}

// ActivateProfile atomically swaps the globally active profile. It fails with
// ErrNotFound if the name is unknown. The previous active name is returned so
// callers that hit a downstream failure can issue an explicit compensating
// activation; no automatic rollback happens here.
func (gc *GlobalConfig) ActivateProfile(name string) (previous string, err error) {
	if _, ok := gc.Profiles[name]; !ok {
		return gc.ActiveProfileName, errors.Wrapf(errors.ErrNotFound, "profile %q does not exist", name)
	}

	previous = gc.ActiveProfileName
	if previous == name {
		// Activating the already-active profile is a no-op.
		return previous, nil
	}

	gc.ActiveProfileName = name
	if err := gc.save(); err != nil {
		gc.ActiveProfileName = previous
		return previous, err
	}
	return previous, nil
}

// SetActiveStack records the named stack as active inside the named profile.
// Stack existence is validated by the caller against the profile's registry.
func (gc *GlobalConfig) SetActiveStack(profileName, stackName string) error {
	p, ok := gc.Profiles[profileName]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "profile %q does not exist", profileName)
	}

	previous := p.ActiveStack
	p.ActiveStack = stackName
	if err := gc.save(); err != nil {
		p.ActiveStack = previous
		return err
	}
	return nil
}

// SetLoggingVerbosity persists the default log level used when no verbosity
// flag is given. Level validity is checked by the caller.
func (gc *GlobalConfig) SetLoggingVerbosity(level string) error {
	previous := gc.LoggingVerbosity
	gc.LoggingVerbosity = level
	if err := gc.save(); err != nil {
		gc.LoggingVerbosity = previous
		return err
	}
	return nil
}

// SetAnalyticsOptIn persists the analytics opt-in flag.
func (gc *GlobalConfig) SetAnalyticsOptIn(optIn bool) error {
	previous := gc.AnalyticsOptIn
	gc.AnalyticsOptIn = optIn
	if err := gc.save(); err != nil {
		gc.AnalyticsOptIn = previous
		return err
	}
	return nil
}
