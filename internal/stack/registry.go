package stack

import (
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/paths"
	"github.com/thoreinstein/strata/pkg/fileutil"
)

// Registry is the set of stacks registered under one profile, persisted as a
// single YAML file in the profile's state directory.
//
// Like the global configuration, a registry is intended for single-caller
// use; concurrent writers to the same file are last-writer-wins.
type Registry struct {
	path   string
	stacks map[string]*Stack
}

// registryFile is the on-disk shape of a stack registry.
type registryFile struct {
	Stacks map[string]*Stack `yaml:"stacks"`
}

// OpenRegistry loads the stack registry persisted at path, or starts an
// empty one when the file does not exist yet.
func OpenRegistry(path string) (*Registry, error) {
	r := &Registry{
		path:   path,
		stacks: make(map[string]*Stack),
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r, nil
		}
		return nil, errors.Wrap(err, "reading stack registry")
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "unmarshaling stack registry")
	}
	if file.Stacks != nil {
		r.stacks = file.Stacks
	}
	// Stack names are the map keys; keep embedded names in sync for files
	// edited by hand.
	for name, s := range r.stacks {
		if s.Name == "" {
			s.Name = name
		}
	}
	return r, nil
}

// save persists the registry atomically.
func (r *Registry) save() error {
	if err := paths.EnsureDir(filepath.Dir(r.path), 0); err != nil {
		return errors.Wrap(err, "creating profile state directory")
	}
	if err := fileutil.AtomicWriteYAMLWithPerm(r.path, registryFile{Stacks: r.stacks}, 0o600); err != nil {
		return errors.Wrap(err, "writing stack registry")
	}
	return nil
}

// Get looks up a stack by name. Lookups never fail; absence is reported
// through the second return value.
func (r *Registry) Get(name string) (*Stack, bool) {
	s, ok := r.stacks[name]
	return s, ok
}

// Names returns all registered stack names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.stacks))
	for name := range r.stacks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds a stack to the registry. It fails with ErrDuplicateName when
// a stack with the same name already exists in this scope, and with
// ErrValidation when the stack is malformed. Validation happens before any
// persisted mutation.
func (r *Registry) Register(s *Stack) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if _, exists := r.stacks[s.Name]; exists {
		return errors.Wrapf(errors.ErrDuplicateName, "stack %q is already registered", s.Name)
	}

	r.stacks[s.Name] = s
	if err := r.save(); err != nil {
		delete(r.stacks, s.Name)
		return err
	}
	return nil
}

// Delete removes a stack by name. activeNames are the stack names currently
// active in any scope (the profile's active stack and a repository-local
// override); deleting one of those fails with ErrActiveResource, as does
// deleting a stack that still holds provisioned resources. All checks happen
// before any mutation.
func (r *Registry) Delete(name string, activeNames []string) error {
	s, ok := r.stacks[name]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "stack %q does not exist", name)
	}
	for _, active := range activeNames {
		if name == active {
			return errors.Wrapf(errors.ErrActiveResource, "stack %q is currently active", name)
		}
	}

	// Even partially provisioned stacks must be deprovisioned first.
	statuses, _, err := s.Status()
	if err != nil {
		return err
	}
	for _, st := range statuses {
		if st.Managed && st.Provisioned {
			return errors.Wrapf(errors.ErrActiveResource,
				"stack %q still holds provisioned resources (component %q); deprovision it first", name, st.Name)
		}
	}

	delete(r.stacks, name)
	if err := r.save(); err != nil {
		r.stacks[name] = s
		return err
	}
	return nil
}
