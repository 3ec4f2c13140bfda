package stack

import (
	"sync"

	"github.com/thoreinstein/strata/internal/errors"
)

// Provisioner manages the external resources behind a component record.
// Implementations must be idempotent: Provision on an already-provisioned
// resource and Deprovision on an already-released one are no-ops.
//
// Provisioning may block for an externally-determined duration (starting a
// local service). Callers wanting a timeout wrap the call externally;
// mid-operation cancellation is not supported.
type Provisioner interface {
	// Provision ensures the resource exists and is running.
	Provision() error

	// Deprovision releases the resource.
	Deprovision() error

	// Provisioned reports whether the resource currently exists.
	Provisioned() (bool, error)
}

// Factory builds a Provisioner for a component record of its flavor.
type Factory func(rec Record) (Provisioner, error)

type flavorKey struct {
	role   Role
	flavor string
}

// FlavorRegistry maps (role, flavor) pairs to provisioner factories. Variants
// are selected by tagged dispatch on the component record, never by duck
// typing. It is safe for concurrent use.
type FlavorRegistry struct {
	mu        sync.RWMutex
	factories map[flavorKey]Factory
}

// NewFlavorRegistry creates an empty flavor registry.
func NewFlavorRegistry() *FlavorRegistry {
	return &FlavorRegistry{
		factories: make(map[flavorKey]Factory),
	}
}

// Register adds a factory for a (role, flavor) pair.
// Returns ErrDuplicateName if the pair is already registered and
// ErrValidation for an unknown role.
func (r *FlavorRegistry) Register(role Role, flavor string, f Factory) error {
	if !ValidRole(role) {
		return errors.Wrapf(errors.ErrValidation, "unknown component role %q", role)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := flavorKey{role: role, flavor: flavor}
	if _, exists := r.factories[key]; exists {
		return errors.Wrapf(errors.ErrDuplicateName, "flavor %q already registered for role %q", flavor, role)
	}
	r.factories[key] = f
	return nil
}

// Provisioner builds the provisioner for a component record.
// Returns ErrNotFound when no factory is registered for the record's
// (role, flavor) pair.
func (r *FlavorRegistry) Provisioner(rec Record) (Provisioner, error) {
	r.mu.RLock()
	f, ok := r.factories[flavorKey{role: rec.Role, flavor: rec.Flavor}]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no flavor %q registered for role %q", rec.Flavor, rec.Role)
	}
	return f(rec)
}

// Flavors is the process-wide flavor registry. Component packages register
// their variants here; RegisterFlavor panics on collision because flavor
// registration happens at init time where the only cure is fixing the code.
var Flavors = NewFlavorRegistry()

// RegisterFlavor registers a factory with the process-wide registry.
func RegisterFlavor(role Role, flavor string, f Factory) {
	if err := Flavors.Register(role, flavor, f); err != nil {
		panic(err)
	}
}

// ResourceFree is implemented by provisioners that manage no external
// resources at all (remote backends, plain URI records). They are excluded
// when deriving a stack's provisioned state, so a stack of only resource-free
// components is deletable without a deprovision step.
type ResourceFree interface {
	ResourceFree() bool
}

// NopProvisioner is the Provisioner for components without resources to
// manage: provisioning is a no-op.
type NopProvisioner struct{}

// Provision implements Provisioner as a no-op.
func (NopProvisioner) Provision() error { return nil }

// Deprovision implements Provisioner as a no-op.
func (NopProvisioner) Deprovision() error { return nil }

// Provisioned always reports true: there is nothing to allocate.
func (NopProvisioner) Provisioned() (bool, error) { return true, nil }

// ResourceFree marks the provisioner as managing no external resources.
func (NopProvisioner) ResourceFree() bool { return true }
