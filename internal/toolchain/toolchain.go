// Package toolchain verifies that the active toolchain is new enough to
// publish with, before any destructive action is taken.
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DefaultTool is the registry toolchain queried when none is configured.
const DefaultTool = "cargo"

// Querier reports the version of the active toolchain.
//
// The query is an external collaborator: tests substitute a fake, the CLI
// uses CommandQuerier.
type Querier interface {
	Version(ctx context.Context) (*semver.Version, error)
}

// CommandQuerier obtains the version by running `<tool> --version` and
// parsing its first line.
type CommandQuerier struct {
	// Tool is the executable to query. Empty means DefaultTool.
	Tool string
}

func (q *CommandQuerier) tool() string {
	if q.Tool == "" {
		return DefaultTool
	}
	return q.Tool
}

// Version runs the tool and parses its reported version.
func (q *CommandQuerier) Version(ctx context.Context) (*semver.Version, error) {
	cmd := exec.CommandContext(ctx, q.tool(), "--version")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("querying %s version: %w", q.tool(), err)
	}

	v, err := ParseToolVersion(stdout.String())
	if err != nil {
		return nil, fmt.Errorf("querying %s version: %w", q.tool(), err)
	}
	return v, nil
}

// ParseToolVersion extracts a semantic version from `--version` style output
// such as "cargo 1.48.0 (65cbdd2dc 2020-10-14)".
//
// The first whitespace-separated field that parses as a version wins.
func ParseToolVersion(output string) (*semver.Version, error) {
	trimmed := strings.TrimSpace(output)
	for _, field := range strings.Fields(trimmed) {
		if v, err := semver.NewVersion(field); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no version found in %q", trimmed)
}
