// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

// Package compose provides typed access to the "docker compose" CLI
// for starting and stopping the containerized deployment. All commands
// run in the workspace directory, where the generated
// docker-compose.yml lives. Output streams through to the operator's
// terminal — compose progress is the user-facing output of these
// commands.
package compose

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Deployment targets the compose manifest in a workspace directory.
type Deployment struct {
	dir string
}

// NewDeployment returns a Deployment running compose commands in dir.
func NewDeployment(dir string) *Deployment {
	return &Deployment{dir: dir}
}

// Up starts all services detached.
func (d *Deployment) Up(ctx context.Context) error {
	return d.run(ctx, "up", "-d")
}

// Down stops and removes all services.
func (d *Deployment) Down(ctx context.Context) error {
	return d.run(ctx, "down")
}

func (d *Deployment) run(ctx context.Context, args ...string) error {
	manifest := filepath.Join(d.dir, "docker-compose.yml")
	if _, err := os.Stat(manifest); os.IsNotExist(err) {
		return fmt.Errorf("no compose manifest at %s; run 'koi-net setup --docker' first", manifest)
	}

	fullArgs := append([]string{"compose"}, args...)
	command := exec.CommandContext(ctx, "docker", fullArgs...)
	command.Dir = d.dir
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr

	if err := command.Run(); err != nil {
		return fmt.Errorf("docker %s in %s: %w", strings.Join(fullArgs, " "), d.dir, err)
	}
	return nil
}
