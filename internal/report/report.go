// Package report writes an optional JSON record of a completed run.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"shipwright/internal/sequence"
)

// RunReport is the JSON artifact describing one release run. It is written
// after the run — success or failure — so a scripting caller can inspect
// per-package outcomes without scraping logs.
type RunReport struct {
	Tool        string          `json:"tool"`
	ToolVersion string          `json:"tool_version"`
	Mode        string          `json:"mode"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"`
	Succeeded   bool            `json:"succeeded"`
	Packages    []PackageReport `json:"packages"`
}

// PackageReport is the terminal outcome of one package.
type PackageReport struct {
	Name     string `json:"name"`
	Manifest string `json:"manifest,omitempty"`
	State    string `json:"state"`
	Reason   string `json:"reason,omitempty"`
}

// Build assembles a RunReport from the sequencer's results.
func Build(tool, toolVersion, mode string, started, finished time.Time, results []sequence.Result) *RunReport {
	r := &RunReport{
		Tool:        tool,
		ToolVersion: toolVersion,
		Mode:        mode,
		StartedAt:   started.UTC(),
		FinishedAt:  finished.UTC(),
		Succeeded:   !sequence.Failed(results),
		Packages:    make([]PackageReport, 0, len(results)),
	}
	for _, res := range results {
		pr := PackageReport{
			Name:     res.Package,
			Manifest: res.ManifestID,
			State:    string(res.State),
		}
		if res.Reason != nil {
			pr.Reason = res.Reason.Error()
		}
		r.Packages = append(r.Packages, pr)
	}
	return r
}

// Write serializes the report to path.
func (r *RunReport) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing run report (%s): %w", path, err)
	}
	return nil
}
