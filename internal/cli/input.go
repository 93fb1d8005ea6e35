package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"shipwright/internal/registry"
)

// Exit codes distinguish failure classes for scripting callers: a wrapper
// script reacts differently to "toolchain too old" than to "publish failed".
const (
	ExitSuccess           = 0
	ExitPublishFailure    = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitToolchainTooOld   = 4
	ExitStageFailure      = 5
	ExitInternalError     = 6
)

// Invocation is the canonicalized description of one run.
//
// All paths are absolute: relative inputs are resolved against WorkDir, and
// WorkDir itself must be absolute so nothing depends on the process working
// directory.
type Invocation struct {
	WorkDir    string
	ConfigPath string
	Mode       registry.Mode
	ReportPath string
	Verbose    bool
}

// InvocationError is a CLI usage error carrying its semantic exit code.
type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// NewInvocation canonicalizes raw flag values into an Invocation.
func NewInvocation(workDir, configPath string, dryRun bool, reportPath string, verbose bool) (Invocation, error) {
	workDir = filepath.Clean(workDir)
	if workDir == "" || workDir == "." {
		return Invocation{}, invalidInvocationf("--workdir is required")
	}
	if !filepath.IsAbs(workDir) {
		return Invocation{}, invalidInvocationf("--workdir must be an absolute path (got %q)", workDir)
	}

	resolvedConfig, err := resolveUnderWorkDir(workDir, configPath)
	if err != nil {
		return Invocation{}, err
	}

	inv := Invocation{
		WorkDir:    workDir,
		ConfigPath: resolvedConfig,
		Mode:       registry.ModeReal,
		Verbose:    verbose,
	}
	if dryRun {
		inv.Mode = registry.ModeDryRun
	}

	if strings.TrimSpace(reportPath) != "" {
		resolvedReport, err := resolveUnderWorkDir(workDir, reportPath)
		if err != nil {
			return Invocation{}, err
		}
		inv.ReportPath = resolvedReport
	}

	return inv, nil
}

func resolveUnderWorkDir(workDir, p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", invalidInvocationf("path must not be empty")
	}
	clean := filepath.Clean(p)
	if filepath.IsAbs(clean) {
		return clean, nil
	}
	// WorkDir is absolute, so Join never consults the process CWD.
	return filepath.Clean(filepath.Join(workDir, clean)), nil
}

// ExitError wraps a run failure with the exit code the process should end
// with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeFor extracts a semantic exit code from an error returned by a
// command. nil means success; unknown errors map to ExitInternalError.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != 0 {
		return exitErr.Code
	}
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr.ExitCode != 0 {
		return invErr.ExitCode
	}
	return ExitInternalError
}
