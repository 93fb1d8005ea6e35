package sequence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"shipwright/internal/plan"
	"shipwright/internal/registry"
)

type call struct {
	manifest string
	mode     registry.Mode
}

// fakeClient records invocations and fails on configured manifests.
type fakeClient struct {
	calls   []call
	failOn  map[string]error
	realRun int
}

func (c *fakeClient) Publish(_ context.Context, manifestPath string, mode registry.Mode) error {
	c.calls = append(c.calls, call{manifest: manifestPath, mode: mode})
	if mode == registry.ModeReal {
		c.realRun++
	}
	if err, ok := c.failOn[manifestPath]; ok {
		return err
	}
	return nil
}

func testPlan(t *testing.T, names ...string) *plan.PublishPlan {
	t.Helper()
	packages := make([]plan.Package, 0, len(names))
	var prev string
	for _, name := range names {
		pkg := plan.Package{Name: name, Manifest: name + "/Cargo.toml"}
		if prev != "" {
			pkg.DependsOn = []string{prev}
		}
		packages = append(packages, pkg)
		prev = name
	}
	p, err := plan.NewPlan(packages)
	if err != nil {
		t.Fatalf("building plan: %v", err)
	}
	return p
}

func newSequencer(t *testing.T, client registry.Client) *Sequencer {
	t.Helper()
	s, err := New(client)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestRun_InvokesClientInExactPlanOrder(t *testing.T) {
	client := &fakeClient{}
	s := newSequencer(t, client)

	results := s.Run(context.Background(), testPlan(t, "a", "b", "c"), registry.ModeReal)

	wantCalls := []call{
		{manifest: "a/Cargo.toml", mode: registry.ModeReal},
		{manifest: "b/Cargo.toml", mode: registry.ModeReal},
		{manifest: "c/Cargo.toml", mode: registry.ModeReal},
	}
	if !reflect.DeepEqual(client.calls, wantCalls) {
		t.Fatalf("expected calls %v, got %v", wantCalls, client.calls)
	}

	for i, name := range []string{"a", "b", "c"} {
		if results[i].Package != name || results[i].State != StateSucceeded {
			t.Fatalf("expected %s SUCCEEDED at %d, got %+v", name, i, results[i])
		}
		if results[i].Reason != nil {
			t.Fatalf("unexpected reason on success: %v", results[i].Reason)
		}
	}
}

func TestRun_FailureHaltsAndSkipsRemainder(t *testing.T) {
	reason := &registry.PublishError{Kind: registry.FailureAuth, Manifest: "b/Cargo.toml"}
	client := &fakeClient{failOn: map[string]error{"b/Cargo.toml": reason}}
	s := newSequencer(t, client)

	results := s.Run(context.Background(), testPlan(t, "a", "b", "c"), registry.ModeReal)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].State != StateSucceeded {
		t.Fatalf("expected a SUCCEEDED, got %s", results[0].State)
	}
	if results[1].State != StateFailed || results[1].Reason != reason {
		t.Fatalf("expected b FAILED with preserved reason, got %+v", results[1])
	}
	if results[2].State != StateSkipped {
		t.Fatalf("expected c SKIPPED, got %s", results[2].State)
	}

	// c must never have been attempted.
	if len(client.calls) != 2 {
		t.Fatalf("expected 2 publish calls, got %d", len(client.calls))
	}
}

func TestRun_FirstPackageFailureSkipsEverythingElse(t *testing.T) {
	client := &fakeClient{failOn: map[string]error{"a/Cargo.toml": fmt.Errorf("boom")}}
	s := newSequencer(t, client)

	results := s.Run(context.Background(), testPlan(t, "a", "b", "c"), registry.ModeReal)

	if results[0].State != StateFailed {
		t.Fatalf("expected a FAILED, got %s", results[0].State)
	}
	for _, r := range results[1:] {
		if r.State != StateSkipped {
			t.Fatalf("expected %s SKIPPED, got %s", r.Package, r.State)
		}
	}
	if len(client.calls) != 1 {
		t.Fatalf("expected 1 publish call, got %d", len(client.calls))
	}
}

func TestRun_DryRunNeverTouchesMutatingPath(t *testing.T) {
	client := &fakeClient{}
	s := newSequencer(t, registry.DryRunGuard{Client: client})

	first := s.Run(context.Background(), testPlan(t, "a", "b"), registry.ModeDryRun)
	second := s.Run(context.Background(), testPlan(t, "a", "b"), registry.ModeDryRun)

	if client.realRun != 0 {
		t.Fatalf("dry run reached the mutating path %d times", client.realRun)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical result sequences, got %v vs %v", first, second)
	}
}

func TestRun_CancelledBeforeStartSkipsAll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &fakeClient{}
	s := newSequencer(t, client)

	results := s.Run(ctx, testPlan(t, "a", "b"), registry.ModeReal)

	if len(client.calls) != 0 {
		t.Fatalf("expected no publish calls, got %d", len(client.calls))
	}
	for _, r := range results {
		if r.State != StateSkipped {
			t.Fatalf("expected %s SKIPPED, got %s", r.Package, r.State)
		}
	}
}

func TestRun_ManifestIdentityCaptured(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "Cargo.toml")
	content := "[package]\nname = \"wasm-opt\"\nversion = \"0.2.0\"\n"
	if err := os.WriteFile(manifestPath, []byte(content), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	p, err := plan.NewPlan([]plan.Package{{Name: "wasm-opt", Manifest: manifestPath}})
	if err != nil {
		t.Fatalf("building plan: %v", err)
	}

	results := newSequencer(t, &fakeClient{}).Run(context.Background(), p, registry.ModeReal)
	if results[0].ManifestID != "wasm-opt v0.2.0" {
		t.Fatalf("expected manifest identity, got %q", results[0].ManifestID)
	}
}

func TestNew_NilClient(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error")
	}
}
