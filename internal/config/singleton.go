package config

import (
	"sync"

	"github.com/thoreinstein/strata/internal/paths"
)

// The process-wide singleton. Constructed lazily on first access; test
// harnesses swap it with Reset/Restore.
var (
	mu       sync.Mutex
	instance *GlobalConfig
)

// Instance returns the process-wide GlobalConfig, constructing it on first
// access. The STRATA_CONFIG_PATH environment variable is consumed at
// construction time only.
func Instance() (*GlobalConfig, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}
	gc, err := New(paths.ConfigRoot())
	if err != nil {
		return nil, err
	}
	instance = gc
	return instance, nil
}

// Reset atomically swaps out the live singleton and returns the handle to the
// previous instance so it can be reinstalled later with Restore. The next
// Instance call constructs a fresh configuration.
//
// Reset/Restore pairs nest: a module-scoped test can hold the saved handle
// across any number of inner Reset/Restore cycles.
func Reset() *GlobalConfig {
	mu.Lock()
	defer mu.Unlock()

	previous := instance
	instance = nil
	return previous
}

// Restore reinstalls a previously saved instance. Passing nil leaves the
// singleton unset, which matches the state right after a Reset.
func Restore(saved *GlobalConfig) {
	mu.Lock()
	defer mu.Unlock()

	instance = saved
}
