// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Resolver ensures node repositories exist locally at a target
// revision. Resolution distinguishes three outcomes:
//
//   - recoverable/fallback: the desired revision is unavailable when
//     cloning, so the repository's default revision is used instead
//     (logged as a warning);
//   - recoverable/no-op: an existing checkout cannot be moved to the
//     desired revision, so it is left untouched (logged as a warning);
//   - fatal: the repository cannot be acquired at all, which stops the
//     run — a half-initialized source tree must never be used.
type Resolver struct {
	// RemoteBase is the URL prefix repositories are cloned from,
	// e.g. "https://github.com/BlockScience". The repository name is
	// appended as a path segment.
	RemoteBase string

	// Logger receives warnings for the recoverable outcomes. Must be
	// non-nil.
	Logger *slog.Logger
}

// RemoteURL returns the clone URL for a repository name.
func (r *Resolver) RemoteURL(repoName string) string {
	return strings.TrimSuffix(r.RemoteBase, "/") + "/" + repoName
}

// Ensure makes the working copy at dir exist and, where possible, track
// the desired revision. It returns the confirmed directory path. A nil
// error means dir holds a usable source tree, though possibly at a
// different revision than requested (after a logged fallback).
func (r *Resolver) Ensure(ctx context.Context, dir, repoName, revision string) (string, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return "", fmt.Errorf("resolving %s: %s exists and is not a directory", repoName, dir)
	case err == nil:
		if err := r.refresh(ctx, dir, repoName, revision); err != nil {
			return "", err
		}
		return dir, nil
	case os.IsNotExist(err):
		if err := r.clone(ctx, dir, repoName, revision); err != nil {
			return "", err
		}
		return dir, nil
	default:
		return "", fmt.Errorf("resolving %s: stat %s: %w", repoName, dir, err)
	}
}

// clone acquires a fresh working copy. It first tries the desired
// revision directly; when that revision does not exist upstream the
// clone fails, and a second clone of the default revision is attempted.
// Only the second failure is fatal.
func (r *Resolver) clone(ctx context.Context, dir, repoName, revision string) error {
	url := r.RemoteURL(repoName)

	if err := Clone(ctx, url, dir, "-b", revision); err == nil {
		return nil
	}

	r.Logger.Warn("revision unavailable upstream, falling back to default revision",
		"repo", repoName, "revision", revision)

	// The failed clone may have left a partial directory behind.
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("resolving %s: removing partial clone %s: %w", repoName, dir, err)
	}

	if err := Clone(ctx, url, dir); err != nil {
		return fmt.Errorf("resolving %s: %w", repoName, err)
	}
	return nil
}

// refresh updates an existing working copy: fetch remote references,
// and switch to the desired revision when it exists remotely. Every
// failure here is recoverable — the existing local state stays usable.
func (r *Resolver) refresh(ctx context.Context, dir, repoName, revision string) error {
	repo := NewRepository(dir)

	if _, err := repo.Run(ctx, "fetch"); err != nil {
		r.Logger.Warn("fetch failed, keeping existing checkout",
			"repo", repoName, "error", err)
		return nil
	}

	exists, err := r.remoteHasRevision(ctx, repo, revision)
	if err != nil {
		r.Logger.Warn("remote revision lookup failed, keeping existing checkout",
			"repo", repoName, "revision", revision, "error", err)
		return nil
	}
	if !exists {
		r.Logger.Warn("revision does not exist on remote, keeping existing checkout",
			"repo", repoName, "revision", revision)
		return nil
	}

	if _, err := repo.Run(ctx, "checkout", revision); err != nil {
		r.Logger.Warn("checkout failed, keeping existing checkout",
			"repo", repoName, "revision", revision, "error", err)
		return nil
	}
	return nil
}

// remoteHasRevision reports whether the revision exists as a branch
// head on origin.
func (r *Resolver) remoteHasRevision(ctx context.Context, repo *Repository, revision string) (bool, error) {
	output, err := repo.Run(ctx, "ls-remote", "--heads", "origin", revision)
	if err != nil {
		return false, err
	}
	return strings.Contains(output, "refs/heads/"+revision), nil
}
