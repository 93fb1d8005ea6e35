package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lithammer/dedent"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"shipwright/internal/cli"
)

type Command struct {
	Config  string `help:"Release plan file." default:"shipwright.yaml"`
	WorkDir string `help:"Directory plan paths are resolved against." default:"." type:"path"`
	Report  string `help:"Write a JSON run report to this path."`
	Verbose bool   `help:"Enable verbose output." short:"v"`

	Publish cli.PublishCommand `cmd:"" help:"Stage sources and publish every package in dependency order."`
	Check   cli.CheckCommand   `cmd:"" help:"Validate the release without mutating the registry."`
}

func main() {
	command := new(Command)
	ctx := kong.Parse(
		command,
		kong.Name("shipwright"),
		kong.Description(dedent.Dedent(`
			Publish a dependency-ordered set of packages to a registry.

			Shipwright verifies the toolchain version, stages the vendored
			source tree into each consuming package, then publishes each
			package in plan order, halting on the first failure.`)),
	)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if command.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	err := ctx.Run(&cli.App{
		Config:  command.Config,
		WorkDir: command.WorkDir,
		Verbose: command.Verbose,
		Report:  command.Report,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.ExitCodeFor(err))
}
