package repository

import (
	"os"
	"sync"

	"github.com/thoreinstein/strata/internal/errors"
)

// The per-process repository singleton, anchored at the working directory of
// first access. Test harnesses swap it with Reset/Restore.
var (
	mu       sync.Mutex
	instance *Repository
)

// Instance returns the process-wide Repository, opening it from the current
// working directory on first access.
func Instance() (*Repository, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "resolving working directory")
	}
	r, err := Open(cwd)
	if err != nil {
		return nil, err
	}
	instance = r
	return instance, nil
}

// Reset swaps out the live singleton and returns the previous handle for a
// later Restore. Resetting the repository never touches stack resources;
// anything provisioned stays provisioned across any number of Reset/Restore
// cycles.
func Reset() *Repository {
	mu.Lock()
	defer mu.Unlock()

	previous := instance
	instance = nil
	return previous
}

// Restore reinstalls a previously saved instance. Passing nil leaves the
// singleton unset, matching the state right after a Reset.
func Restore(saved *Repository) {
	mu.Lock()
	defer mu.Unlock()

	instance = saved
}
