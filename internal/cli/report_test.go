package cli

import (
	"errors"
	"strings"
	"testing"

	"shipwright/internal/registry"
	"shipwright/internal/sequence"
)

func TestPrintReport_StatesAndHaltNotice(t *testing.T) {
	results := []sequence.Result{
		{Package: "wasm-opt-sys", State: sequence.StateSucceeded, ManifestID: "wasm-opt-sys v0.1.0"},
		{Package: "wasm-opt-cxx-sys", State: sequence.StateFailed, Reason: errors.New("no token found")},
		{Package: "wasm-opt", State: sequence.StateSkipped},
	}

	var sb strings.Builder
	PrintReport(&sb, results, registry.ModeReal)
	out := sb.String()

	for _, want := range []string{
		"wasm-opt-sys v0.1.0",
		"SUCCEEDED",
		"FAILED (no token found)",
		"SKIPPED",
		"halted at wasm-opt-cxx-sys",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected report to contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "dry run") {
		t.Fatalf("unexpected dry run banner:\n%s", out)
	}
}

func TestPrintReport_DryRunBanner(t *testing.T) {
	var sb strings.Builder
	PrintReport(&sb, []sequence.Result{
		{Package: "a", State: sequence.StateSucceeded},
	}, registry.ModeDryRun)

	if !strings.Contains(sb.String(), "dry run: no package was published") {
		t.Fatalf("expected dry run banner:\n%s", sb.String())
	}
}
