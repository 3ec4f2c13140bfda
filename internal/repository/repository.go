// Package repository scopes profile and stack activation to a working
// directory. A repository is anchored by a .strata marker directory and holds
// local overrides for the active profile and stack; it stores names only and
// never owns the records (or the stack resources) they point to.
package repository

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/strata/internal/config"
	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/paths"
	"github.com/thoreinstein/strata/internal/stack"
	"github.com/thoreinstein/strata/pkg/fileutil"
)

// localState is the on-disk shape of the repository-local state file.
type localState struct {
	ActiveProfile string `toml:"active_profile,omitempty"`
	ActiveStack   string `toml:"active_stack,omitempty"`
}

// Repository is the working-directory scope. Root is the nearest initialized
// ancestor of the directory it was opened from, or that directory itself when
// no ancestor carries the marker. OriginalCwd is the directory the process
// was opened from and survives later chdir calls by collaborators.
//
// Like GlobalConfig, a Repository is intended for single-caller use.
type Repository struct {
	root        string
	originalCwd string
	state       localState
}

// Open anchors a repository at the nearest initialized ancestor of cwd,
// falling back to cwd itself when no marker is found. An uninitialized
// repository is usable for reads; it simply carries no local overrides.
func Open(cwd string) (*Repository, error) {
	r := &Repository{
		root:        cwd,
		originalCwd: cwd,
	}
	if root, found := paths.FindRepositoryRoot(cwd); found {
		r.root = root
		if err := r.load(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// InitDir initializes dir as a repository root of its own, even when an
// ancestor already carries the marker, and returns it opened.
func InitDir(dir string) (*Repository, error) {
	r := &Repository{
		root:        dir,
		originalCwd: dir,
	}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

// load reads the repository-local state file, tolerating its absence: an
// initialized repository without overrides is a valid state.
func (r *Repository) load() error {
	data, err := fileutil.ReadFileWithLimit(paths.RepositoryConfigPath(r.root))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrap(err, "reading repository state")
	}
	if err := toml.Unmarshal(data, &r.state); err != nil {
		return errors.Wrap(err, "unmarshaling repository state")
	}
	return nil
}

// save persists the repository-local state atomically, creating the marker
// directory when needed.
func (r *Repository) save() error {
	if err := paths.EnsureDir(paths.MarkerDir(r.root), 0o755); err != nil {
		return errors.Wrap(err, "creating repository marker")
	}
	if err := fileutil.AtomicWriteTOMLWithPerm(paths.RepositoryConfigPath(r.root), r.state, 0o644); err != nil {
		return errors.Wrap(err, "writing repository state")
	}
	return nil
}

// Root returns the directory the repository is anchored at.
func (r *Repository) Root() string {
	return r.root
}

// OriginalCwd returns the directory the repository was opened from.
func (r *Repository) OriginalCwd() string {
	return r.originalCwd
}

// Initialized reports whether the root carries the repository marker.
func (r *Repository) Initialized() bool {
	info, err := os.Stat(paths.MarkerDir(r.root))
	return err == nil && info.IsDir()
}

// Init creates the repository marker in the root, turning the directory into
// a repository of its own even when an ancestor already is one. Initializing
// twice fails with ErrDuplicateName.
func (r *Repository) Init() error {
	if info, err := os.Stat(paths.MarkerDir(r.root)); err == nil && info.IsDir() {
		return errors.Wrapf(errors.ErrDuplicateName, "repository at %s is already initialized", r.root)
	}
	return r.save()
}

// ActiveProfileName returns the repository-local active profile name, empty
// when no local override is set.
func (r *Repository) ActiveProfileName() string {
	return r.state.ActiveProfile
}

// ActiveStackName returns the repository-local active stack name, empty when
// no local override is set.
func (r *Repository) ActiveStackName() string {
	return r.state.ActiveStack
}

// ActivateProfile records name as the locally active profile. The name is
// validated against the global configuration (ErrNotFound for unknown names)
// before any mutation; activating an uninitialized directory initializes it.
// The previous local override is returned so callers hitting a downstream
// failure can issue an explicit compensating activation.
func (r *Repository) ActivateProfile(gc *config.GlobalConfig, name string) (previous string, err error) {
	if _, ok := gc.GetProfile(name); !ok {
		return r.state.ActiveProfile, errors.Wrapf(errors.ErrNotFound, "profile %q does not exist", name)
	}

	previous = r.state.ActiveProfile
	if previous == name {
		return previous, nil
	}

	r.state.ActiveProfile = name
	if err := r.save(); err != nil {
		r.state.ActiveProfile = previous
		return previous, err
	}
	return previous, nil
}

// DeactivateProfile clears the repository-local profile override, restoring
// the global profile's precedence. Clearing when no override is set is a
// no-op.
func (r *Repository) DeactivateProfile() error {
	previous := r.state.ActiveProfile
	if previous == "" {
		return nil
	}

	r.state.ActiveProfile = ""
	if err := r.save(); err != nil {
		r.state.ActiveProfile = previous
		return err
	}
	return nil
}

// ActivateStack records name as the locally active stack. The name is
// validated against the stack registry of the effective profile (the local
// override when set, otherwise the globally active profile) before any
// mutation.
func (r *Repository) ActivateStack(gc *config.GlobalConfig, name string) (previous string, err error) {
	profileName := r.state.ActiveProfile
	if profileName == "" {
		profileName = gc.ActiveProfileName
	}

	reg, err := stack.OpenRegistry(gc.StacksPath(profileName))
	if err != nil {
		return r.state.ActiveStack, err
	}
	if _, ok := reg.Get(name); !ok {
		return r.state.ActiveStack, errors.Wrapf(errors.ErrNotFound,
			"stack %q is not registered in profile %q", name, profileName)
	}

	previous = r.state.ActiveStack
	if previous == name {
		return previous, nil
	}

	r.state.ActiveStack = name
	if err := r.save(); err != nil {
		r.state.ActiveStack = previous
		return previous, err
	}
	return previous, nil
}
