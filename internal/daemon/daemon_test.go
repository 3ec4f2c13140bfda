package daemon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/strata/internal/errors"
)

// isolateRuntimeDir points the runtime directory at a temp dir so tests never
// touch real pid files.
func isolateRuntimeDir(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)
}

func TestStartStop(t *testing.T) {
	isolateRuntimeDir(t)

	require.NoError(t, Start("orchestrator", "sleep 30"))
	t.Cleanup(func() { _ = Stop("orchestrator") })

	running, err := Running("orchestrator")
	require.NoError(t, err)
	assert.True(t, running)
	assert.FileExists(t, PidFile("orchestrator"))

	// A second start is a no-op: the recorded pid stays the same.
	before, err := os.ReadFile(PidFile("orchestrator"))
	require.NoError(t, err)
	require.NoError(t, Start("orchestrator", "sleep 30"))
	after, err := os.ReadFile(PidFile("orchestrator"))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	require.NoError(t, Stop("orchestrator"))
	running, err = Running("orchestrator")
	require.NoError(t, err)
	assert.False(t, running)
	assert.NoFileExists(t, PidFile("orchestrator"))
}

func TestStop_NeverStarted(t *testing.T) {
	isolateRuntimeDir(t)
	assert.NoError(t, Stop("ghost"))
}

func TestStart_EmptyCommand(t *testing.T) {
	isolateRuntimeDir(t)
	err := Start("orchestrator", "   ")
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestStart_UnparsableCommand(t *testing.T) {
	isolateRuntimeDir(t)
	err := Start("orchestrator", `sleep "30`)
	assert.Error(t, err)
}

func TestRunning_StalePidFile(t *testing.T) {
	isolateRuntimeDir(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(PidFile("stale")), 0o700))
	require.NoError(t, os.WriteFile(PidFile("stale"), []byte("2147483646\n"), 0o600))

	running, err := Running("stale")
	require.NoError(t, err)
	assert.False(t, running, "a pid with no live process reads as not running")

	// Stop cleans the stale file up.
	require.NoError(t, Stop("stale"))
	assert.NoFileExists(t, PidFile("stale"))
}

func TestRunning_CorruptPidFile(t *testing.T) {
	isolateRuntimeDir(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(PidFile("bad")), 0o700))
	require.NoError(t, os.WriteFile(PidFile("bad"), []byte("not-a-pid\n"), 0o600))

	running, err := Running("bad")
	require.NoError(t, err)
	assert.False(t, running)
}
