package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/strata/internal/errors"
)

func TestReadFileWithLimit(t *testing.T) {
	dir := t.TempDir()

	sparse := func(t *testing.T, name string, size int64) string {
		t.Helper()
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, f.Truncate(size))
		require.NoError(t, f.Close())
		return path
	}

	t.Run("round-trips content", func(t *testing.T) {
		path := filepath.Join(dir, "state.yaml")
		require.NoError(t, os.WriteFile(path, []byte("active_profile: default\n"), 0o600))

		data, err := ReadFileWithLimit(path)
		require.NoError(t, err)
		assert.Equal(t, "active_profile: default\n", string(data))
	})

	t.Run("accepts a file at exactly the limit", func(t *testing.T) {
		data, err := ReadFileWithLimit(sparse(t, "at-limit", MaxFileSize))
		require.NoError(t, err)
		assert.Len(t, data, MaxFileSize)
	})

	t.Run("rejects an oversized file", func(t *testing.T) {
		_, err := ReadFileWithLimit(sparse(t, "over-limit", MaxFileSize+1))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrFileTooLarge))
	})

	t.Run("missing file surfaces os.ErrNotExist", func(t *testing.T) {
		_, err := ReadFileWithLimit(filepath.Join(dir, "absent"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}
