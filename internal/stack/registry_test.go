package stack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/strata/internal/errors"
)

// registerDefaultNop registers a NopProvisioner flavor for all roles in the
// process-wide registry. Flavor names must be unique per test because the
// registry is never unregistered.
func registerDefaultNop(t *testing.T, flavor string) {
	t.Helper()
	for _, role := range []Role{RoleOrchestrator, RoleMetadataStore, RoleArtifactStore, RoleContainerRegistry} {
		RegisterFlavor(role, flavor, func(rec Record) (Provisioner, error) {
			return NopProvisioner{}, nil
		})
	}
}

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := OpenRegistry(filepath.Join(t.TempDir(), "stacks.yaml"))
	require.NoError(t, err)
	return r
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registerDefaultNop(t, "reg-basic")
	r := openTestRegistry(t)

	s := testStack("local", "reg-basic")
	require.NoError(t, r.Register(s))

	got, ok := r.Get("local")
	require.True(t, ok)
	assert.Equal(t, s.Name, got.Name)

	_, ok = r.Get("ghost")
	assert.False(t, ok)

	assert.Equal(t, []string{"local"}, r.Names())
}

func TestRegistry_DuplicateName(t *testing.T) {
	registerDefaultNop(t, "reg-dup")
	r := openTestRegistry(t)

	require.NoError(t, r.Register(testStack("local", "reg-dup")))
	err := r.Register(testStack("local", "reg-dup"))
	assert.True(t, errors.Is(err, errors.ErrDuplicateName))
}

func TestRegistry_RegisterValidatesFirst(t *testing.T) {
	r := openTestRegistry(t)

	s := testStack("broken", "reg-invalid")
	s.MetadataStore = Record{}
	err := r.Register(s)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	_, ok := r.Get("broken")
	assert.False(t, ok, "invalid stack must not be registered")

	// Nothing was persisted either.
	_, statErr := os.Stat(r.path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRegistry_PersistenceRoundTrip(t *testing.T) {
	registerDefaultNop(t, "reg-persist")
	path := filepath.Join(t.TempDir(), "stacks.yaml")

	r, err := OpenRegistry(path)
	require.NoError(t, err)
	s := testStack("local", "reg-persist")
	s.MetadataStore.Settings = map[string]string{"database": "/data/meta.db"}
	require.NoError(t, r.Register(s))

	reloaded, err := OpenRegistry(path)
	require.NoError(t, err)
	got, ok := reloaded.Get("local")
	require.True(t, ok)
	assert.Equal(t, s.MetadataStore.ID, got.MetadataStore.ID)
	assert.Equal(t, "/data/meta.db", got.MetadataStore.Settings["database"])
	assert.Nil(t, got.ContainerRegistry)
}

func TestRegistry_Delete(t *testing.T) {
	registerDefaultNop(t, "reg-del")

	t.Run("unknown stack", func(t *testing.T) {
		r := openTestRegistry(t)
		err := r.Delete("ghost", nil)
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})

	t.Run("active stack is protected", func(t *testing.T) {
		r := openTestRegistry(t)
		require.NoError(t, r.Register(testStack("local", "reg-del")))

		err := r.Delete("local", []string{"local"})
		assert.True(t, errors.Is(err, errors.ErrActiveResource))
		_, ok := r.Get("local")
		assert.True(t, ok, "failed delete must not mutate the registry")
	})

	t.Run("inactive resource-free stack is removed", func(t *testing.T) {
		r := openTestRegistry(t)
		require.NoError(t, r.Register(testStack("local", "reg-del")))

		require.NoError(t, r.Delete("local", []string{"another"}))
		_, ok := r.Get("local")
		assert.False(t, ok)
	})
}

func TestRegistry_DeleteProvisionedStack(t *testing.T) {
	// Flavor with a real (simulated) resource, registered process-wide.
	up := false
	for _, role := range []Role{RoleOrchestrator, RoleMetadataStore, RoleArtifactStore} {
		RegisterFlavor(role, "reg-del-live", func(rec Record) (Provisioner, error) {
			return &fakeProvisioner{up: &up}, nil
		})
	}

	r := openTestRegistry(t)
	s := testStack("local", "reg-del-live")
	require.NoError(t, r.Register(s))
	require.NoError(t, s.Provision())

	err := r.Delete("local", nil)
	assert.True(t, errors.Is(err, errors.ErrActiveResource),
		"provisioned stacks must be deprovisioned before deletion")

	require.NoError(t, s.Deprovision())
	assert.NoError(t, r.Delete("local", nil))
}
