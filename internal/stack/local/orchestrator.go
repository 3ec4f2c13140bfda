package local

import (
	"github.com/thoreinstein/strata/internal/daemon"
	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/stack"
)

// daemonOrchestrator runs the orchestrator as a supervised background
// process. The required "command" setting is the shell-style command line of
// the service; the daemon is named after the record's identity so two
// orchestrator records never share a pid file.
type daemonOrchestrator struct {
	name    string
	command string
}

func newDaemonOrchestrator(rec stack.Record) (stack.Provisioner, error) {
	command := rec.Setting("command", "")
	if command == "" {
		return nil, errors.Wrapf(errors.ErrValidation,
			"orchestrator %q uses the daemon flavor and needs a %q setting", rec.Name, "command")
	}
	return &daemonOrchestrator{
		name:    "orchestrator-" + rec.ID,
		command: command,
	}, nil
}

// Provision starts the orchestrator daemon. An already-running daemon is
// left alone.
func (o *daemonOrchestrator) Provision() error {
	return daemon.Start(o.name, o.command)
}

// Deprovision stops the orchestrator daemon if it is running.
func (o *daemonOrchestrator) Deprovision() error {
	return daemon.Stop(o.name)
}

// Provisioned reports whether the daemon process is alive.
func (o *daemonOrchestrator) Provisioned() (bool, error) {
	return daemon.Running(o.name)
}
