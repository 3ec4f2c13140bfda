package commands

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/paths"
)

func TestInitCommand(t *testing.T) {
	setupCLITest(t)

	out, err := runCLI(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized strata repository")

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.DirExists(t, paths.MarkerDir(cwd))

	// A second init in the same directory is refused.
	_, err = runCLI(t, "init")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDuplicateName))
}
