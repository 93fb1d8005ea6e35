package cli

import (
	"fmt"
	"io"

	"shipwright/internal/registry"
	"shipwright/internal/sequence"
)

// PrintReport writes the final per-package report: one line per package
// with its terminal state, in plan order.
func PrintReport(w io.Writer, results []sequence.Result, mode registry.Mode) {
	if mode == registry.ModeDryRun {
		fmt.Fprintln(w, "dry run: no package was published")
	}

	for _, r := range results {
		name := r.Package
		if r.ManifestID != "" {
			name = r.ManifestID
		}
		switch r.State {
		case sequence.StateFailed:
			fmt.Fprintf(w, "%-32s %s (%v)\n", name, r.State, r.Reason)
		default:
			fmt.Fprintf(w, "%-32s %s\n", name, r.State)
		}
	}

	if failure := sequence.FirstFailure(results); failure != nil {
		fmt.Fprintf(w, "halted at %s; later packages were not attempted\n", failure.Package)
	}
}
