// Package config provides the process-wide (machine-level) configuration for
// strata: the registry of configuration profiles, the name of the globally
// active profile, and the analytics opt-in flag.
//
// # Persistence
//
// State is persisted as YAML at <config root>/config.yaml. The config root is
// resolved from the STRATA_CONFIG_PATH environment variable when set, and the
// XDG config home otherwise; the singleton captures the root once at
// construction time. Writes are atomic (temp file + rename), so an
// interrupted write leaves the previous state observable.
//
// # Singleton Lifecycle
//
// [Instance] constructs the configuration lazily on first access, loading
// persisted state if present and seeding a "default" local profile otherwise.
// Test harnesses isolate themselves with the symmetric [Reset]/[Restore]
// pair:
//
//	saved := config.Reset()
//	defer config.Restore(saved)
//	t.Setenv(paths.ConfigPathEnvVar, t.TempDir())
//
// The pair nests correctly: state owned by an outer scope (such as a
// provisioned stack) is untouched by inner resets, because the configuration
// holds only names, never the provisioned resources themselves.
//
// # Concurrency
//
// The configuration is intended for single-caller use. Concurrent writers to
// the same persisted file are last-writer-wins; this is a known limitation,
// not a defect to work around with file locking.
package config
