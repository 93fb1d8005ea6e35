package registry

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// CargoClient publishes by shelling out to cargo.
type CargoClient struct {
	// Tool is the cargo executable. Empty means "cargo".
	Tool string
}

func (c *CargoClient) tool() string {
	if c.Tool == "" {
		return "cargo"
	}
	return c.Tool
}

// Publish runs `cargo publish` for the given manifest.
//
// Cancellation is only honored before the process starts. Once a publish is
// in flight it is never killed: an interrupted publish leaves the registry
// state unknowable, which is worse than waiting for the tool to finish.
// Timeouts, if any, belong to cargo itself.
func (c *CargoClient) Publish(ctx context.Context, manifestPath string, mode Mode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	args := publishArgs(manifestPath, mode)
	log.Debug().Str("tool", c.tool()).Strs("args", args).Msg("invoking registry client")

	cmd := exec.Command(c.tool(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		// The tool could not be started at all.
		return &PublishError{Kind: FailureOther, Manifest: manifestPath, Detail: err.Error()}
	}
	return classify(manifestPath, exitErr.ExitCode(), stderr.String())
}

func publishArgs(manifestPath string, mode Mode) []string {
	args := []string{"publish", "--manifest-path", manifestPath}
	if mode == ModeDryRun {
		args = append(args, "--dry-run")
	}
	return args
}
