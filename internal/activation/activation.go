// Package activation resolves which profile and stack are in effect for a
// command. Resolution is a pure read: a Snapshot captures both scopes at a
// single point in time and all precedence questions are answered from it,
// so one command never observes two different activation states.
package activation

import (
	"github.com/thoreinstein/strata/internal/config"
	"github.com/thoreinstein/strata/internal/repository"
)

// Snapshot is the activation state of both scopes at one instant. Local
// values are empty when the working directory carries no override (or no
// repository at all).
type Snapshot struct {
	GlobalProfile string
	LocalProfile  string
	GlobalStack   string
	LocalStack    string
}

// Result names the resolved value and records which scopes consider it
// active. Both flags can be true at once: a name can be the global choice
// and the local override simultaneously.
type Result struct {
	Name           string
	GloballyActive bool
	LocallyActive  bool
}

// Take captures the activation state from the two scopes. The repository may
// be nil when the command runs outside any working-directory scope. The
// global stack is the active stack recorded inside the effective profile, so
// a local profile override also redirects which stack counts as globally
// active.
func Take(gc *config.GlobalConfig, r *repository.Repository) Snapshot {
	s := Snapshot{
		GlobalProfile: gc.ActiveProfileName,
	}
	if r != nil {
		s.LocalProfile = r.ActiveProfileName()
		s.LocalStack = r.ActiveStackName()
	}

	effective := s.GlobalProfile
	if s.LocalProfile != "" {
		effective = s.LocalProfile
	}
	if p, ok := gc.GetProfile(effective); ok {
		s.GlobalStack = p.ActiveStack
	}
	return s
}

// Profile resolves the effective profile: the local override when present,
// the global choice otherwise.
func (s Snapshot) Profile() Result {
	name := s.GlobalProfile
	local := false
	if s.LocalProfile != "" {
		name = s.LocalProfile
		local = true
	}
	return Result{
		Name:           name,
		GloballyActive: name == s.GlobalProfile,
		LocallyActive:  local,
	}
}

// Stack resolves the effective stack with the same local-over-global
// precedence as Profile. The name is empty when neither scope has chosen a
// stack.
func (s Snapshot) Stack() Result {
	name := s.GlobalStack
	local := false
	if s.LocalStack != "" {
		name = s.LocalStack
		local = true
	}
	return Result{
		Name:           name,
		GloballyActive: name != "" && name == s.GlobalStack,
		LocallyActive:  local,
	}
}

// ProfileFlags reports whether the named profile is the globally and the
// locally active one in this snapshot.
func (s Snapshot) ProfileFlags(name string) (global, local bool) {
	return name == s.GlobalProfile, name != "" && name == s.LocalProfile
}

// StackFlags reports whether the named stack is the globally and the locally
// active one in this snapshot.
func (s Snapshot) StackFlags(name string) (global, local bool) {
	return name != "" && name == s.GlobalStack, name != "" && name == s.LocalStack
}
