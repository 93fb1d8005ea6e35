package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"shipwright/internal/config"
	"shipwright/internal/plan"
	"shipwright/internal/registry"
	"shipwright/internal/report"
	"shipwright/internal/sequence"
	"shipwright/internal/stage"
	"shipwright/internal/toolchain"
)

// Collaborators are the external services a run consumes. Zero values mean
// "use the real thing"; tests substitute fakes.
type Collaborators struct {
	Toolchain toolchain.Querier
	Registry  registry.Client
}

// RunResult is what a completed (or aborted) run reports back to main.
type RunResult struct {
	ExitCode int
	Results  []sequence.Result
}

// Execute runs a canonical invocation against the real collaborators.
func Execute(ctx context.Context, inv Invocation) (RunResult, error) {
	return ExecuteWith(ctx, inv, Collaborators{})
}

// ExecuteWith orchestrates one release run: load the plan, gate the
// toolchain, stage sources, publish in order, report.
//
// Ordering is a hard contract: the version gate runs before any staging
// (a gate failure must leave no side effects), and staging completes for
// every package before the first publish (a staging failure must abort
// before anything reaches the registry).
func ExecuteWith(ctx context.Context, inv Invocation, collab Collaborators) (RunResult, error) {
	res := RunResult{ExitCode: ExitInternalError}

	cfg, err := config.Load(inv.ConfigPath)
	if err != nil {
		res.ExitCode = ExitConfigError
		return res, err
	}

	required, err := cfg.MinimumVersion()
	if err != nil {
		res.ExitCode = ExitConfigError
		return res, err
	}

	packages := resolvePackages(inv.WorkDir, cfg.PlanPackages())
	p, err := plan.NewPlan(packages)
	if err != nil {
		res.ExitCode = ExitConfigError
		return res, err
	}

	querier := collab.Toolchain
	if querier == nil {
		querier = &toolchain.CommandQuerier{Tool: cfg.Toolchain.Tool}
	}
	actual, err := querier.Version(ctx)
	if err != nil {
		res.ExitCode = ExitToolchainTooOld
		return res, err
	}
	if err := toolchain.Gate(required, actual); err != nil {
		log.Error().Str("required", required.String()).Str("actual", actual.String()).Msg("toolchain version check failed")
		res.ExitCode = ExitToolchainTooOld
		return res, err
	}
	log.Info().
		Str("tool", cfg.Toolchain.Tool).
		Str("required", required.String()).
		Str("actual", actual.String()).
		Msg("toolchain version check passed")

	source := resolveUnder(inv.WorkDir, cfg.Source.Root)
	stager := stage.NewStager()
	for _, pkg := range p.Packages() {
		if len(pkg.StageTargets) == 0 {
			continue
		}
		if err := stager.Stage(source, pkg.StageTargets, pkg.Excludes); err != nil {
			res.ExitCode = ExitStageFailure
			return res, err
		}
		if inv.Verbose {
			for _, target := range pkg.StageTargets {
				if tree, err := stage.RenderTree(target, 2); err == nil {
					log.Debug().Str("target", target).Msg("staged tree:\n" + tree)
				}
			}
		}
	}

	client := collab.Registry
	if client == nil {
		client = &registry.CargoClient{Tool: cfg.Toolchain.Tool}
	}
	if inv.Mode == registry.ModeDryRun {
		client = registry.DryRunGuard{Client: client}
	}

	seq, err := sequence.New(client)
	if err != nil {
		return res, err
	}

	started := time.Now()
	results := seq.Run(ctx, p, inv.Mode)
	finished := time.Now()
	res.Results = results

	PrintReport(os.Stdout, results, inv.Mode)

	if inv.ReportPath != "" {
		r := report.Build(cfg.Toolchain.Tool, actual.String(), string(inv.Mode), started, finished, results)
		if err := r.Write(inv.ReportPath); err != nil {
			log.Warn().Err(err).Msg("could not write run report")
		}
	}

	if failure := sequence.FirstFailure(results); failure != nil {
		res.ExitCode = ExitPublishFailure
		return res, failure.Reason
	}
	res.ExitCode = ExitSuccess
	return res, nil
}

// resolvePackages rewrites every package path to be absolute under workDir.
func resolvePackages(workDir string, packages []plan.Package) []plan.Package {
	out := make([]plan.Package, 0, len(packages))
	for _, pkg := range packages {
		pkg.Manifest = resolveUnder(workDir, pkg.Manifest)
		targets := make([]string, 0, len(pkg.StageTargets))
		for _, target := range pkg.StageTargets {
			targets = append(targets, resolveUnder(workDir, target))
		}
		pkg.StageTargets = targets
		out = append(out, pkg)
	}
	return out
}

func resolveUnder(workDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(workDir, p))
}
