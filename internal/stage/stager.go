// Package stage copies a vendored source tree into each consuming package's
// staging directory, pruning excluded subpaths from the staged copy.
package stage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Stager places full copies of a source tree under target directories.
type Stager struct{}

// NewStager creates a Stager.
func NewStager() *Stager { return &Stager{} }

// Stage copies source into each target in order, then prunes excludes from
// each staged copy.
//
// Per target: any pre-existing staged copy is removed first, so the call is
// idempotent and never accumulates stale files. After a successful call the
// target is a self-contained copy of source minus the excluded subpaths.
//
// A copy failure is fatal and returned as ErrCopyFailed; note that a failed
// copy to target N does not roll back targets 1..N-1 — the caller decides
// whether to abort. A prune failure is logged and skipped (ErrPruneFailed is
// never returned from Stage): pruning is hygiene, and a leftover exclude
// must not halt a release.
func (s *Stager) Stage(source string, targets []string, excludes []string) error {
	info, err := os.Stat(source)
	if err != nil {
		return copyFailed(source, err)
	}
	if !info.IsDir() {
		return copyFailed(source, fmt.Errorf("not a directory"))
	}

	for _, target := range targets {
		if err := os.RemoveAll(target); err != nil {
			return copyFailed(target, err)
		}
		if err := copyTree(source, target); err != nil {
			return err
		}
		log.Info().Str("source", source).Str("target", target).Msg("staged source tree")

		for _, exclude := range excludes {
			pruned := filepath.Join(target, exclude)
			if err := os.RemoveAll(pruned); err != nil {
				log.Warn().Err(pruneFailed(pruned, err)).Msg("could not prune excluded path")
				continue
			}
			log.Debug().Str("path", pruned).Msg("pruned excluded path")
		}
	}

	return nil
}

// copyTree recursively copies src into dst, preserving file modes and
// recreating symlinks rather than following them.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return copyFailed(path, walkErr)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return copyFailed(path, err)
		}
		out := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return copyFailed(path, err)
			}
			if err := os.MkdirAll(out, info.Mode().Perm()); err != nil {
				return copyFailed(out, err)
			}
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return copyFailed(path, err)
			}
			if err := os.Symlink(link, out); err != nil {
				return copyFailed(out, err)
			}
		default:
			if err := copyFile(path, out, d); err != nil {
				return err
			}
		}
		return nil
	})
}

func copyFile(src, dst string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return copyFailed(src, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return copyFailed(src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return copyFailed(dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return copyFailed(dst, err)
	}
	if err := out.Close(); err != nil {
		return copyFailed(dst, err)
	}
	return nil
}
