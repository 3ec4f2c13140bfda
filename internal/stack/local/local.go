// Package local provides the built-in component flavors: a sqlite-backed
// metadata store, a filesystem artifact store, an orchestrator that runs as a
// supervised background daemon, and resource-free variants for remote or
// declarative components.
//
// Flavors self-register with the process-wide flavor registry; importing the
// package (usually for side effects from the command layer) makes them
// available for dispatch.
package local

import (
	"path/filepath"

	"github.com/thoreinstein/strata/internal/paths"
	"github.com/thoreinstein/strata/internal/stack"
)

// Flavor names dispatched through the component records.
const (
	FlavorLocal   = "local"
	FlavorDaemon  = "daemon"
	FlavorSqlite  = "sqlite"
	FlavorRest    = "rest"
	FlavorDefault = "default"
)

func init() {
	// Resource-free variants first: the plain local orchestrator runs
	// in-process, the rest metadata store lives on a remote server, and the
	// container registry is a named URI record with no managed resources.
	stack.RegisterFlavor(stack.RoleOrchestrator, FlavorLocal, nopFactory)
	stack.RegisterFlavor(stack.RoleMetadataStore, FlavorRest, nopFactory)
	stack.RegisterFlavor(stack.RoleContainerRegistry, FlavorDefault, nopFactory)

	stack.RegisterFlavor(stack.RoleOrchestrator, FlavorDaemon, newDaemonOrchestrator)
	stack.RegisterFlavor(stack.RoleMetadataStore, FlavorSqlite, newSqliteMetadataStore)
	stack.RegisterFlavor(stack.RoleArtifactStore, FlavorLocal, newArtifactStore)
}

func nopFactory(stack.Record) (stack.Provisioner, error) {
	return stack.NopProvisioner{}, nil
}

// componentDataDir is the default resource location for a component record.
// Keyed by record ID so copies with independent identity never share
// resources.
func componentDataDir(kind string, rec stack.Record) string {
	return filepath.Join(paths.DataHome(), kind, rec.ID)
}
