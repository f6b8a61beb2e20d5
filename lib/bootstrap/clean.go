// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package bootstrap

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BlockScience/koi-net-demo-v1/lib/artifact"
	"github.com/BlockScience/koi-net-demo-v1/lib/config"
	"github.com/BlockScience/koi-net-demo-v1/lib/venv"
)

// Clean removes everything the bootstrapper generates from the
// workspace: configuration documents, build files, the compose
// manifest, virtual environments, node state (.koi) and Python cache
// files. Source trees, .env files, and the secret store survive —
// those carry operator-entered data. Never descends into .git.
func Clean(cfg *config.Config, logger *slog.Logger) error {
	err := filepath.WalkDir(cfg.Workspace, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			if isGeneratedFile(entry.Name()) {
				logger.Info("removing", "path", path)
				return os.Remove(path)
			}
			return nil
		}

		switch entry.Name() {
		case ".git":
			return filepath.SkipDir
		case ".koi", venv.VenvDir, "__pycache__":
			logger.Info("removing", "path", path)
			if err := os.RemoveAll(path); err != nil {
				return err
			}
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cleaning workspace %s: %w", cfg.Workspace, err)
	}

	manifest := filepath.Join(cfg.Workspace, artifact.ComposeFile)
	if _, err := os.Stat(manifest); err == nil {
		logger.Info("removing", "path", manifest)
		if err := os.Remove(manifest); err != nil {
			return fmt.Errorf("removing compose manifest: %w", err)
		}
	}

	return nil
}

func isGeneratedFile(name string) bool {
	return name == ConfigFile || name == "Dockerfile" || strings.HasSuffix(name, ".pyc")
}
