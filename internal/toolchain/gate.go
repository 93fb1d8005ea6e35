package toolchain

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// GateError reports a toolchain that does not satisfy the minimum version.
type GateError struct {
	Required *semver.Version
	Actual   *semver.Version
}

func (e *GateError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("toolchain too old: need at least %s, found %s", e.Required, e.Actual)
}

// Gate verifies that the actual toolchain version meets the required minimum.
//
// It is a pure check; the caller obtains the actual version from a Querier
// first. It must run before staging or publishing: a failure aborts the run
// with no side effects.
func Gate(required, actual *semver.Version) error {
	if required == nil {
		return fmt.Errorf("no required version")
	}
	if actual == nil {
		return fmt.Errorf("no actual version")
	}
	if actual.LessThan(required) {
		return &GateError{Required: required, Actual: actual}
	}
	return nil
}
