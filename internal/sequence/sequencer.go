// Package sequence publishes a plan strictly in dependency order, halting
// on the first failure.
package sequence

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"shipwright/internal/manifest"
	"shipwright/internal/plan"
	"shipwright/internal/registry"
)

// Sequencer drives the registry client over a publish plan.
//
// The core policy: packages are published in exactly the plan's order, and
// the first failure halts every subsequent publish — publishing package K
// after a dependency failed would publish a broken reference. There is no
// retry: registry publishes are not idempotent and blindly re-submitting a
// rejected publish is unsafe.
type Sequencer struct {
	client registry.Client
}

// New creates a Sequencer backed by the given registry client.
func New(client registry.Client) (*Sequencer, error) {
	if client == nil {
		return nil, fmt.Errorf("nil registry client")
	}
	return &Sequencer{client: client}, nil
}

// Run publishes the plan in order and returns one Result per package, in
// plan order, regardless of outcome.
//
// Execution is strictly serial; each publish blocks to completion before
// the next begins. Cancellation is only observed between packages — once a
// publish has started it is never interrupted. A run cancelled before
// package K leaves K and everything after it SKIPPED.
func (s *Sequencer) Run(ctx context.Context, p *plan.PublishPlan, mode registry.Mode) []Result {
	if ctx == nil {
		ctx = context.Background()
	}

	packages := p.Packages()
	state := make(RunState, len(packages))
	for _, pkg := range packages {
		state[pkg.Name] = StatePending
	}

	results := make([]Result, 0, len(packages))

	for i, pkg := range packages {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Str("package", pkg.Name).Msg("run cancelled, skipping remainder")
			return append(results, skipRemainder(state, packages[i:])...)
		}

		// Manifest identity is best-effort: it only decorates logs and the
		// report. A broken manifest is the registry client's to reject.
		id := ""
		if m, err := manifest.Load(pkg.Manifest); err == nil {
			id = m.ID()
		} else {
			log.Debug().Err(err).Str("package", pkg.Name).Msg("manifest identity unavailable")
		}

		if err := Transition(state, pkg.Name, StatePending, StatePublishing); err != nil {
			// A sequencing bug, not a registry failure.
			log.Error().Err(err).Str("package", pkg.Name).Msg("sequencer state violation")
			results = append(results, Result{Package: pkg.Name, State: StateFailed, Reason: err, ManifestID: id})
			return append(results, skipRemainder(state, packages[i+1:])...)
		}

		log.Info().
			Str("package", pkg.Name).
			Str("manifest", pkg.Manifest).
			Str("mode", string(mode)).
			Msg("publishing")

		if err := s.client.Publish(ctx, pkg.Manifest, mode); err != nil {
			_ = Transition(state, pkg.Name, StatePublishing, StateFailed)
			log.Error().Err(err).Str("package", pkg.Name).Msg("publish failed, halting run")
			results = append(results, Result{Package: pkg.Name, State: StateFailed, Reason: err, ManifestID: id})
			return append(results, skipRemainder(state, packages[i+1:])...)
		}

		_ = Transition(state, pkg.Name, StatePublishing, StateSucceeded)
		log.Info().Str("package", pkg.Name).Str("mode", string(mode)).Msg("publish succeeded")
		results = append(results, Result{Package: pkg.Name, State: StateSucceeded, ManifestID: id})
	}

	return results
}

// skipRemainder marks every not-yet-attempted package SKIPPED, in plan
// order, and returns the matching results.
func skipRemainder(state RunState, remaining []plan.Package) []Result {
	skipped := make([]Result, 0, len(remaining))
	for _, pkg := range remaining {
		if err := Transition(state, pkg.Name, StatePending, StateSkipped); err != nil {
			log.Error().Err(err).Str("package", pkg.Name).Msg("sequencer state violation")
		}
		log.Warn().Str("package", pkg.Name).Msg("skipped: run halted before this package")
		skipped = append(skipped, Result{Package: pkg.Name, State: StateSkipped})
	}
	return skipped
}
