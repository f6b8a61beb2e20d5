// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

// Package git provides typed access to the git CLI for acquiring and
// updating node repositories. All commands target a specific working
// copy via the -C flag, which is automatically injected by Repository
// methods. On top of the raw wrapper, [Resolver] implements the
// revision-resolution policy the bootstrapper needs: clone at a desired
// revision with graceful fallback, or refresh an existing checkout.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Repository represents a git working copy at a specific directory.
// All operations target this directory via "git -C <dir>". There is no
// default directory — callers must always specify which repository
// they mean.
type Repository struct {
	dir string
}

// NewRepository returns a Repository targeting the given directory.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// Dir returns the repository directory.
func (r *Repository) Dir() string {
	return r.dir
}

// Run executes a git command targeting this repository and returns
// stdout. Stderr is captured separately and included in error messages
// on failure.
func (r *Repository) Run(ctx context.Context, args ...string) (string, error) {
	fullArgs := append([]string{"-C", r.dir}, args...)
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, "git", fullArgs...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("git %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), r.dir, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Command returns an *exec.Cmd for a git command without running it.
// The caller gets full control over Stdin, Stdout, Stderr, and
// SysProcAttr before starting the process. The -C flag targeting
// this repository is automatically prepended.
func (r *Repository) Command(ctx context.Context, args ...string) *exec.Cmd {
	fullArgs := append([]string{"-C", r.dir}, args...)
	return exec.CommandContext(ctx, "git", fullArgs...)
}

// Clone runs "git clone <url> <dir>" with optional extra arguments
// inserted before the URL (e.g., "-b", "demo-1"). Unlike Repository
// methods it has no -C target: the destination does not exist yet.
func Clone(ctx context.Context, url, dir string, extraArgs ...string) error {
	args := append([]string{"clone"}, extraArgs...)
	args = append(args, url, dir)

	var stderr bytes.Buffer
	command := exec.CommandContext(ctx, "git", args...)
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return fmt.Errorf("git %s: %w (stderr: %s)",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
