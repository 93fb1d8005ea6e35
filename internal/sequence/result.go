package sequence

// Result is the terminal outcome of one package in a run.
//
// Results are accumulated in plan order and never revised after the run:
// re-inspecting them is idempotent.
type Result struct {
	// Package is the plan name of the package.
	Package string

	// State is the terminal state: SUCCEEDED, FAILED or SKIPPED.
	State State

	// Reason is the structured failure, non-nil only when State is FAILED.
	Reason error

	// ManifestID is the "name vX.Y.Z" identity read from the package
	// manifest, when it was readable.
	ManifestID string
}

// Failed reports whether any package in the run failed.
func Failed(results []Result) bool {
	return FirstFailure(results) != nil
}

// FirstFailure returns the first FAILED result, or nil when the run was
// fully successful.
func FirstFailure(results []Result) *Result {
	for i := range results {
		if results[i].State == StateFailed {
			return &results[i]
		}
	}
	return nil
}
