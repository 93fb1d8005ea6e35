// Package registry defines the external registry-publish collaborator and
// its cargo-backed implementation.
package registry

import "context"

// Mode selects whether a publish mutates the registry.
type Mode string

const (
	// ModeReal performs the actual publish.
	ModeReal Mode = "real"

	// ModeDryRun performs every registry-side check (manifest
	// well-formedness, auth, duplicate version) without mutating anything.
	ModeDryRun Mode = "dry-run"
)

// Client publishes a single package manifest to the registry.
//
// Implementations return nil on success and a *PublishError (or a plain
// error for infrastructure problems) on failure. Publishes are not
// idempotent: the registry rejects re-publishing an existing version, so
// callers never retry.
type Client interface {
	Publish(ctx context.Context, manifestPath string, mode Mode) error
}

// DryRunGuard wraps a Client so every publish goes through the validate-only
// path, whatever mode the caller asks for.
type DryRunGuard struct {
	Client Client
}

func (g DryRunGuard) Publish(ctx context.Context, manifestPath string, _ Mode) error {
	return g.Client.Publish(ctx, manifestPath, ModeDryRun)
}
