package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{"text", []byte("active_profile = 'default'\n"), 0o644},
		{"empty", []byte{}, 0o644},
		{"binary", []byte{0x00, 0x01, 0x02, 0xFF}, 0o600},
		{"private", []byte("token: abc\n"), 0o600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state")

			require.NoError(t, AtomicWriteFile(path, tt.data, tt.perm))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.perm, info.Mode().Perm())
		})
	}
}

func TestAtomicWriteFile_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, AtomicWriteFile(path, []byte("new"), 0o600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestAtomicWriteFile_MissingParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "absent", "state")

	require.Error(t, AtomicWriteFile(path, []byte("data"), 0o600))

	// No temp file may survive the failure.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAtomicWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stacks.yaml")

	value := struct {
		Stacks map[string]string `yaml:"stacks"`
	}{Stacks: map[string]string{"local": "provisioned"}}

	require.NoError(t, AtomicWriteYAML(path, value))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "stacks:\n    local: provisioned\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestAtomicWriteTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")

	value := struct {
		ActiveProfile string `toml:"active_profile"`
		ActiveStack   string `toml:"active_stack"`
	}{ActiveProfile: "staging", ActiveStack: "local"}

	require.NoError(t, AtomicWriteTOML(path, value))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "active_profile = 'staging'\nactive_stack = 'local'\n", string(got))
}

func TestAtomicWriteMarshalError_LeavesNothingBehind(t *testing.T) {
	for _, tt := range []struct {
		name  string
		write func(path string) error
	}{
		{"yaml func", func(p string) error { return AtomicWriteYAML(p, func() {}) }},
		{"yaml channel", func(p string) error { return AtomicWriteYAML(p, make(chan int)) }},
		{"toml channel", func(p string) error { return AtomicWriteTOML(p, make(chan int)) }},
	} {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "broken")

			require.Error(t, tt.write(path))

			_, err := os.Stat(path)
			assert.True(t, os.IsNotExist(err), "file must not exist after a marshal error")
		})
	}
}

func TestAtomicWriteWithPerm(t *testing.T) {
	for _, tt := range []struct {
		name  string
		write func(path string) error
	}{
		{"yaml", func(p string) error { return AtomicWriteYAMLWithPerm(p, map[string]int{"n": 1}, 0o600) }},
		{"toml", func(p string) error { return AtomicWriteTOMLWithPerm(p, map[string]int{"n": 1}, 0o600) }},
	} {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "private."+tt.name)

			require.NoError(t, tt.write(path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
		})
	}
}
