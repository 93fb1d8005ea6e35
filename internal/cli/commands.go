package cli

import (
	"context"
	"errors"
)

// App carries the global flags shared by every subcommand.
type App struct {
	Config  string
	WorkDir string
	Verbose bool
	Report  string
}

// PublishCommand stages sources and publishes every package in dependency
// order.
type PublishCommand struct {
	DryRun bool `help:"Call the registry in validate-only mode; nothing is published."`
}

func (c *PublishCommand) Run(app *App) error {
	return run(app, c.DryRun)
}

// CheckCommand validates the whole release — toolchain, staging, manifests,
// auth, duplicate versions — without mutating the registry.
type CheckCommand struct{}

func (c *CheckCommand) Run(app *App) error {
	return run(app, true)
}

func run(app *App, dryRun bool) error {
	inv, err := NewInvocation(app.WorkDir, app.Config, dryRun, app.Report, app.Verbose)
	if err != nil {
		return err
	}

	res, err := Execute(context.Background(), inv)
	if err != nil {
		return &ExitError{Code: res.ExitCode, Err: err}
	}
	if res.ExitCode != ExitSuccess {
		return &ExitError{Code: res.ExitCode, Err: errors.New("release failed")}
	}
	return nil
}
