package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the application name used for directory and file naming.
const AppName = "strata"

// ConfigPathEnvVar overrides the global configuration root when set. It is
// consumed once, when the global configuration singleton is constructed.
const ConfigPathEnvVar = "STRATA_CONFIG_PATH"

// RepositoryMarkerDir is the directory that anchors a repository to a working
// directory. Its presence marks the directory as strata-initialized.
const RepositoryMarkerDir = ".strata"

// RepositoryConfigFile is the name of the repository-local state file inside
// the marker directory.
const RepositoryConfigFile = "config.toml"

// GlobalConfigFile is the name of the global configuration file inside the
// config root.
const GlobalConfigFile = "config.yaml"

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ConfigRoot returns the global configuration root directory.
//
// If the STRATA_CONFIG_PATH environment variable is set, its value is used
// verbatim. Otherwise the XDG config home is used:
//   - Linux: ~/.config/strata
//   - macOS: ~/Library/Application Support/strata
//   - Windows: %LOCALAPPDATA%\strata
func ConfigRoot() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

// GlobalConfigPath returns the path of the global configuration file under
// the given config root. The root is passed explicitly because the
// STRATA_CONFIG_PATH override is consumed once, at configuration construction.
func GlobalConfigPath(root string) string {
	return filepath.Join(root, GlobalConfigFile)
}

// ProfilesDir returns the directory holding per-profile state (stack
// registries) under the given config root.
func ProfilesDir(root string) string {
	return filepath.Join(root, "profiles")
}

// ProfileDir returns the state directory for a single named profile.
func ProfileDir(root, profileName string) string {
	return filepath.Join(ProfilesDir(root), profileName)
}

// StacksPath returns the path of the stack registry file for a profile.
func StacksPath(root, profileName string) string {
	return filepath.Join(ProfileDir(root, profileName), "stacks.yaml")
}

// DataHome returns the data directory for locally provisioned component
// resources (database files, artifact directories).
// On Linux: ~/.local/share/strata
func DataHome() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// RuntimeDir returns the directory for runtime state of locally managed
// services (pid files, daemon logs). Falls back to the data home when the
// platform exposes no runtime directory.
func RuntimeDir() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, AppName)
	}
	return filepath.Join(DataHome(), "run")
}

// MarkerDir returns the marker directory path for a repository rooted at
// root.
func MarkerDir(root string) string {
	return filepath.Join(root, RepositoryMarkerDir)
}

// RepositoryConfigPath returns the path of the repository-local state file
// for a repository rooted at root.
func RepositoryConfigPath(root string) string {
	return filepath.Join(root, RepositoryMarkerDir, RepositoryConfigFile)
}

// FindRepositoryRoot walks upward from start looking for a directory that
// contains the repository marker. It returns the first match and true, or an
// empty string and false when no ancestor is initialized.
func FindRepositoryRoot(start string) (string, bool) {
	dir := filepath.Clean(start)
	for {
		marker := filepath.Join(dir, RepositoryMarkerDir)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
