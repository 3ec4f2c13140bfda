package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/strata/internal/config"
	"github.com/thoreinstein/strata/internal/profile"
	"github.com/thoreinstein/strata/internal/repository"
)

func testGlobalConfig(t *testing.T) *config.GlobalConfig {
	t.Helper()
	gc, err := config.New(t.TempDir())
	require.NoError(t, err)
	return gc
}

func TestTake_GlobalOnly(t *testing.T) {
	gc := testGlobalConfig(t)
	require.NoError(t, gc.SetActiveStack(config.DefaultProfileName, "local"))

	s := Take(gc, nil)

	p := s.Profile()
	assert.Equal(t, config.DefaultProfileName, p.Name)
	assert.True(t, p.GloballyActive)
	assert.False(t, p.LocallyActive)

	st := s.Stack()
	assert.Equal(t, "local", st.Name)
	assert.True(t, st.GloballyActive)
	assert.False(t, st.LocallyActive)
}

func TestTake_LocalOverridesGlobal(t *testing.T) {
	gc := testGlobalConfig(t)
	staging := profile.New("staging")
	staging.ActiveStack = "staging-stack"
	require.NoError(t, gc.AddOrUpdateProfile(staging))

	r, err := repository.Open(t.TempDir())
	require.NoError(t, err)
	_, err = r.ActivateProfile(gc, "staging")
	require.NoError(t, err)

	s := Take(gc, r)

	p := s.Profile()
	assert.Equal(t, "staging", p.Name)
	assert.True(t, p.LocallyActive)
	assert.False(t, p.GloballyActive, "the global scope still points at default")

	// The global stack follows the effective profile.
	st := s.Stack()
	assert.Equal(t, "staging-stack", st.Name)
	assert.True(t, st.GloballyActive)
	assert.False(t, st.LocallyActive)
}

func TestTake_BothScopesAgree(t *testing.T) {
	gc := testGlobalConfig(t)
	r, err := repository.Open(t.TempDir())
	require.NoError(t, err)
	_, err = r.ActivateProfile(gc, config.DefaultProfileName)
	require.NoError(t, err)

	p := Take(gc, r).Profile()
	assert.True(t, p.GloballyActive)
	assert.True(t, p.LocallyActive)
}

func TestSnapshot_StackPrecedence(t *testing.T) {
	s := Snapshot{
		GlobalProfile: "default",
		GlobalStack:   "global-stack",
		LocalStack:    "local-stack",
	}

	st := s.Stack()
	assert.Equal(t, "local-stack", st.Name)
	assert.True(t, st.LocallyActive)
	assert.False(t, st.GloballyActive)

	global, local := s.StackFlags("global-stack")
	assert.True(t, global)
	assert.False(t, local)
}

func TestSnapshot_NoStackAnywhere(t *testing.T) {
	s := Snapshot{GlobalProfile: "default"}
	st := s.Stack()
	assert.Empty(t, st.Name)
	assert.False(t, st.GloballyActive)
	assert.False(t, st.LocallyActive)
}

func TestSnapshot_Flags(t *testing.T) {
	s := Snapshot{
		GlobalProfile: "default",
		LocalProfile:  "staging",
	}

	global, local := s.ProfileFlags("default")
	assert.True(t, global)
	assert.False(t, local)

	global, local = s.ProfileFlags("staging")
	assert.False(t, global)
	assert.True(t, local)

	global, local = s.ProfileFlags("")
	assert.False(t, global, "the empty name never matches")
	assert.False(t, local)
}
