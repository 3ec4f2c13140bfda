// Package paths provides path resolution for the strata configuration
// substrate: the global configuration root, per-profile state directories,
// the repository marker directory, and data/runtime directories for locally
// provisioned component resources.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux and macOS, paths follow XDG conventions
// (~/.config, ~/.local/share).
//
// # Config Root Override
//
// The global configuration root can be redirected with the STRATA_CONFIG_PATH
// environment variable. Test harnesses use this to isolate the global state
// of a test scope from the user's real configuration:
//
//	t.Setenv(paths.ConfigPathEnvVar, t.TempDir())
//
// The variable is read every time ConfigRoot is called, but the global
// configuration singleton captures it once at construction time.
//
// # Repository Anchoring
//
// A working directory is strata-initialized when it (or an ancestor) contains
// the .strata marker directory. [FindRepositoryRoot] performs the upward
// search used by the repository singleton.
package paths
