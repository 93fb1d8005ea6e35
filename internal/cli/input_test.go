package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"shipwright/internal/registry"
)

func TestNewInvocation_ResolvesRelativePaths(t *testing.T) {
	inv, err := NewInvocation("/work", "shipwright.yaml", false, "out/report.json", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inv.ConfigPath != filepath.Join("/work", "shipwright.yaml") {
		t.Fatalf("unexpected config path: %s", inv.ConfigPath)
	}
	if inv.ReportPath != filepath.Join("/work", "out", "report.json") {
		t.Fatalf("unexpected report path: %s", inv.ReportPath)
	}
	if inv.Mode != registry.ModeReal {
		t.Fatalf("expected real mode, got %s", inv.Mode)
	}
	if !inv.Verbose {
		t.Fatalf("expected verbose")
	}
}

func TestNewInvocation_AbsolutePathsAcceptedAsIs(t *testing.T) {
	inv, err := NewInvocation("/work", "/elsewhere/plan.yaml", true, "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.ConfigPath != "/elsewhere/plan.yaml" {
		t.Fatalf("unexpected config path: %s", inv.ConfigPath)
	}
	if inv.Mode != registry.ModeDryRun {
		t.Fatalf("expected dry-run mode, got %s", inv.Mode)
	}
	if inv.ReportPath != "" {
		t.Fatalf("expected no report path, got %s", inv.ReportPath)
	}
}

func TestNewInvocation_RejectsBadWorkDir(t *testing.T) {
	for _, workDir := range []string{"", ".", "relative/dir"} {
		_, err := NewInvocation(workDir, "plan.yaml", false, "", false)
		if err == nil {
			t.Fatalf("expected error for workdir %q", workDir)
		}
		var invErr *InvocationError
		if !errors.As(err, &invErr) || invErr.ExitCode != ExitInvalidInvocation {
			t.Fatalf("expected invocation error, got %v", err)
		}
	}
}

func TestNewInvocation_RejectsEmptyConfigPath(t *testing.T) {
	if _, err := NewInvocation("/work", "", false, "", false); err == nil {
		t.Fatalf("expected error")
	}
}

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit error", &ExitError{Code: ExitStageFailure, Err: errors.New("x")}, ExitStageFailure},
		{"invocation error", invalidInvocationf("bad flag"), ExitInvalidInvocation},
		{"unknown error", errors.New("surprise"), ExitInternalError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCodeFor(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
