// Package daemon supervises long-lived background processes through pid
// files. It backs component flavors whose resource is a locally running
// service: Start detaches the process and records its pid, Stop signals it,
// and Running probes liveness without touching the process.
package daemon

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/paths"
)

// stopGrace is how long Stop waits for a signaled process to exit before
// reporting failure.
const stopGrace = 5 * time.Second

// PidFile returns the pid file path for a named daemon.
func PidFile(name string) string {
	return filepath.Join(paths.RuntimeDir(), name+".pid")
}

// LogFile returns the log file path a daemon's output is redirected to.
func LogFile(name string) string {
	return filepath.Join(paths.RuntimeDir(), name+".log")
}

// Start launches command as a detached background process and records its
// pid. The command is a single shell-style string; it is split with shell
// word rules but never passed to a shell. Starting an already-running daemon
// is a no-op.
func Start(name, command string) error {
	if running, _ := Running(name); running {
		return nil
	}

	args, err := shellwords.Parse(command)
	if err != nil {
		return errors.Wrapf(err, "parsing daemon command for %q", name)
	}
	if len(args) == 0 {
		return errors.Wrapf(errors.ErrValidation, "daemon %q has an empty command", name)
	}

	if err := paths.EnsureDir(paths.RuntimeDir(), 0); err != nil {
		return errors.Wrap(err, "creating runtime directory")
	}
	logFile, err := os.OpenFile(LogFile(name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return errors.Wrapf(err, "opening log file for %q", name)
	}
	defer logFile.Close()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	// Own process group so the daemon survives the CLI exiting and signals
	// aimed at the CLI never reach it.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "starting daemon %q", name)
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return errors.Wrapf(err, "detaching daemon %q", name)
	}

	if err := os.WriteFile(PidFile(name), []byte(strconv.Itoa(pid)+"\n"), 0o600); err != nil {
		return errors.Wrapf(err, "recording pid for %q", name)
	}
	return nil
}

// Stop terminates a running daemon and removes its pid file. Stopping a
// daemon that is not running is a no-op. The process group gets SIGTERM and
// a grace period; escalation to SIGKILL follows when it ignores the request.
func Stop(name string) error {
	pid, ok, err := readPid(name)
	if err != nil {
		return err
	}
	if !ok || !alive(pid) {
		return removePidFile(name)
	}

	// Negative pid signals the whole process group created at Start.
	if err := syscall.Kill(-pid, syscall.SIGTERM); err != nil && !errors.Is(err, syscall.ESRCH) {
		return errors.Wrapf(err, "signaling daemon %q", name)
	}

	deadline := time.Now().Add(stopGrace)
	for time.Now().Before(deadline) {
		if !alive(pid) {
			return removePidFile(name)
		}
		time.Sleep(50 * time.Millisecond)
	}

	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return errors.Wrapf(err, "killing daemon %q", name)
	}
	return removePidFile(name)
}

// Running reports whether the named daemon has a live process behind its pid
// file. A stale pid file (recorded process already gone) reads as not
// running.
func Running(name string) (bool, error) {
	pid, ok, err := readPid(name)
	if err != nil {
		return false, err
	}
	return ok && alive(pid), nil
}

func readPid(name string) (pid int, ok bool, err error) {
	data, err := os.ReadFile(PidFile(name))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, errors.Wrapf(err, "reading pid file for %q", name)
	}
	pid, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		// Corrupt pid files are treated as not running; Stop cleans them up.
		return 0, false, nil
	}
	return pid, true, nil
}

// alive probes the process with signal 0.
func alive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}

func removePidFile(name string) error {
	if err := os.Remove(PidFile(name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing pid file for %q", name)
	}
	return nil
}
