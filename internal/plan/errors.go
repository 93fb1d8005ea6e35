package plan

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPlan = errors.New("invalid publish plan")
	ErrCycleFound  = errors.New("dependency cycle detected")
)

// PlanError wraps deterministic plan validation failures.
type PlanError struct {
	Kind error
	Msg  string
}

func (e *PlanError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *PlanError) Unwrap() error { return e.Kind }

func invalidf(format string, args ...any) error {
	return &PlanError{Kind: ErrInvalidPlan, Msg: fmt.Sprintf(format, args...)}
}

func cycleError(path []string) error {
	msg := "cycle"
	if len(path) > 0 {
		msg = "cycle: " + strings.Join(path, " -> ")
	}
	return &PlanError{Kind: ErrCycleFound, Msg: msg}
}
