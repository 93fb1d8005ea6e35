package sequence

import "fmt"

// State is the lifecycle state of one package within a run.
//
// PENDING is initial; PUBLISHING is the transient in-flight state; the
// other three are terminal. No package ever leaves a terminal state.
type State string

const (
	StatePending    State = "PENDING"
	StatePublishing State = "PUBLISHING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
	StateSkipped    State = "SKIPPED"
)

// IsTerminal reports whether the state is final.
func IsTerminal(s State) bool {
	switch s {
	case StateSucceeded, StateFailed, StateSkipped:
		return true
	default:
		return false
	}
}

// RunState maps package name to its current state for one run.
type RunState map[string]State

// Transition performs an atomic validated transition for a single package.
//
// The caller supplies the expected prior state so any sequencing bug is
// observable rather than silently overwritten.
func Transition(state RunState, pkg string, from, to State) error {
	cur, ok := state[pkg]
	if !ok {
		return fmt.Errorf("unknown package in state: %q", pkg)
	}
	if cur != from {
		return fmt.Errorf("invalid transition for %q: expected %s, got %s", pkg, from, cur)
	}
	if !isAllowedTransition(from, to) {
		return fmt.Errorf("disallowed transition for %q: %s -> %s", pkg, from, to)
	}
	state[pkg] = to
	return nil
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case StatePending:
		return to == StatePublishing || to == StateSkipped
	case StatePublishing:
		return to == StateSucceeded || to == StateFailed
	default:
		return false
	}
}
