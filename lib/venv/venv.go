// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

// Package venv provisions an isolated Python execution environment for
// a node repository: a .venv directory created with "python3 -m venv"
// and the node's requirements installed into it with pip.
//
// The bootstrapper treats provisioning as an opaque capability. A
// failure is node-local: configuration documents already written for
// other nodes stay valid, but the node itself is not runnable until a
// rerun succeeds.
package venv

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// VenvDir is the environment directory created inside each node
// repository.
const VenvDir = ".venv"

// Provisioner creates and populates node virtual environments.
type Provisioner struct {
	// Python is the interpreter used to create environments.
	// Defaults to "python3" when empty.
	Python string

	// Logger must be non-nil.
	Logger *slog.Logger
}

// Provision ensures dir has a working .venv with the node's declared
// dependencies installed. Missing requirements.txt is not an error —
// the environment is still created so the node can be launched.
func (p *Provisioner) Provision(ctx context.Context, dir string) error {
	venvPath := filepath.Join(dir, VenvDir)

	if _, err := os.Stat(venvPath); os.IsNotExist(err) {
		p.Logger.Info("creating virtual environment", "path", venvPath)
		if err := p.run(ctx, dir, p.python(), "-m", "venv", VenvDir); err != nil {
			return fmt.Errorf("creating venv in %s: %w", dir, err)
		}
	} else if err != nil {
		return fmt.Errorf("checking venv in %s: %w", dir, err)
	}

	interpreter, err := Python(dir)
	if err != nil {
		// The venv exists but is unusable (e.g. a broken interpreter
		// from an interrupted run). Remove it so a rerun starts fresh.
		if removeErr := os.RemoveAll(venvPath); removeErr != nil {
			return fmt.Errorf("venv at %s is broken and could not be removed: %w", venvPath, removeErr)
		}
		return fmt.Errorf("venv at %s was broken and has been removed, rerun setup: %w", venvPath, err)
	}

	requirementsPath := filepath.Join(dir, "requirements.txt")
	if _, err := os.Stat(requirementsPath); os.IsNotExist(err) {
		p.Logger.Info("no requirements.txt, skipping install", "dir", dir)
		return nil
	}

	p.Logger.Info("installing requirements", "dir", dir)
	if err := p.run(ctx, dir, interpreter, "-m", "pip", "install", "-r", "requirements.txt"); err != nil {
		return fmt.Errorf("installing requirements in %s: %w", dir, err)
	}
	return nil
}

// Python returns the venv interpreter path inside dir, checking the
// POSIX bin/ layout first and the Windows Scripts/ layout second.
func Python(dir string) (string, error) {
	for _, sub := range []string{"bin", "Scripts"} {
		for _, name := range []string{"python", "python3"} {
			path := filepath.Join(dir, VenvDir, sub, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("no python interpreter found in %s", filepath.Join(dir, VenvDir))
}

func (p *Provisioner) python() string {
	if p.Python != "" {
		return p.Python
	}
	return "python3"
}

// run executes a command in dir, folding captured stderr into the
// error on failure.
func (p *Provisioner) run(ctx context.Context, dir, name string, args ...string) error {
	var stderr bytes.Buffer
	command := exec.CommandContext(ctx, name, args...)
	command.Dir = dir
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return fmt.Errorf("%s %s: %w (stderr: %s)",
			name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
