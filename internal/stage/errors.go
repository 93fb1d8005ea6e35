package stage

import (
	"errors"
	"fmt"
)

var (
	// ErrCopyFailed marks a fatal staging failure: an unreadable source or
	// an unwritable target.
	ErrCopyFailed = errors.New("stage copy failed")

	// ErrPruneFailed marks a failure to remove an excluded subpath. Pruning
	// is hygiene, not correctness, so callers treat this as non-fatal.
	ErrPruneFailed = errors.New("stage prune failed")
)

// StageError wraps a staging failure with the path it occurred on.
type StageError struct {
	Kind error
	Path string
	Err  error
}

func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind.Error(), e.Path, e.Err)
}

func (e *StageError) Unwrap() error { return e.Kind }

func copyFailed(path string, err error) error {
	return &StageError{Kind: ErrCopyFailed, Path: path, Err: err}
}

func pruneFailed(path string, err error) error {
	return &StageError{Kind: ErrPruneFailed, Path: path, Err: err}
}
