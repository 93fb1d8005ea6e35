package registry

import (
	"fmt"
	"strings"
)

// FailureKind classifies a rejected publish for reporting. The sequencer
// treats every kind the same way (halt and skip the remainder); the kind
// only makes the final report legible.
type FailureKind string

const (
	FailureAuth      FailureKind = "auth"
	FailureDuplicate FailureKind = "duplicate-version"
	FailureManifest  FailureKind = "manifest"
	FailureNetwork   FailureKind = "network"
	FailureOther     FailureKind = "other"
)

// PublishError is a structured publish rejection.
type PublishError struct {
	Kind     FailureKind
	Manifest string
	ExitCode int
	Detail   string
}

func (e *PublishError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("publish failed (%s): %s", e.Kind, e.Manifest)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// classify maps a failed publish invocation to a PublishError by inspecting
// the tool's stderr wording.
func classify(manifestPath string, exitCode int, stderr string) *PublishError {
	low := strings.ToLower(stderr)

	kind := FailureOther
	switch {
	case containsAny(low, "already uploaded", "already exists", "is already published"):
		kind = FailureDuplicate
	case containsAny(low, "no token found", "cargo login", "authentication", "unauthorized", "not authorized", "401"):
		kind = FailureAuth
	case containsAny(low, "failed to parse manifest", "invalid manifest", "missing field"):
		kind = FailureManifest
	case containsAny(low, "network failure", "connection refused", "connection reset", "timed out", "could not resolve", "dns error", "spurious network"):
		kind = FailureNetwork
	}

	return &PublishError{
		Kind:     kind,
		Manifest: manifestPath,
		ExitCode: exitCode,
		Detail:   lastLines(stderr, 3),
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// lastLines returns the final n non-empty lines of s, joined. Publish tools
// put the actionable message at the end of a long transcript.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	kept := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(kept) < n; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		kept = append([]string{line}, kept...)
	}
	return strings.Join(kept, " | ")
}
