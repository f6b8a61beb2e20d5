// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

// Package config provides configuration loading for the koi-net
// bootstrapper.
//
// All values have working defaults; a config file is optional and is
// passed explicitly via the --config flag. Environment variables do
// not override config values — the only expansion performed is ${VAR}
// path expansion for portability.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/BlockScience/koi-net-demo-v1/lib/topology"
)

// Config is the bootstrapper configuration.
type Config struct {
	// Workspace is the directory holding the node repositories and
	// all generated files.
	Workspace string `yaml:"workspace"`

	// RemoteBase is the URL prefix node repositories are cloned from.
	RemoteBase string `yaml:"remote_base"`

	// Branch is the revision requested for every node repository.
	Branch string `yaml:"branch"`

	// TemplatesDir holds the deployment artifact templates, relative
	// to the workspace unless absolute.
	TemplatesDir string `yaml:"templates_dir"`

	// SecretStore is the shared secret file name, relative to the
	// workspace unless absolute.
	SecretStore string `yaml:"secret_store"`

	// Ports overrides the catalog port for individual nodes, keyed by
	// node ID. Nodes not listed keep their catalog port.
	Ports map[string]int `yaml:"ports,omitempty"`
}

// Default returns the default configuration, matching the layout the
// original demo used: everything in the current directory, the demo-1
// branch of the BlockScience repositories.
func Default() *Config {
	return &Config{
		Workspace:    ".",
		RemoteBase:   "https://github.com/BlockScience",
		Branch:       "demo-1",
		TemplatesDir: "templates",
		SecretStore:  "global.env",
	}
}

// LoadFile loads configuration from path, merging over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Workspace = expandVars(c.Workspace, vars)
	c.TemplatesDir = expandVars(c.TemplatesDir, vars)
	c.SecretStore = expandVars(c.SecretStore, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Workspace == "" {
		errs = append(errs, fmt.Errorf("workspace is required"))
	}
	if c.RemoteBase == "" {
		errs = append(errs, fmt.Errorf("remote_base is required"))
	}
	if c.Branch == "" {
		errs = append(errs, fmt.Errorf("branch is required"))
	}
	if c.SecretStore == "" {
		errs = append(errs, fmt.Errorf("secret_store is required"))
	}

	for name := range c.Ports {
		if _, err := topology.Lookup(topology.NodeID(name)); err != nil {
			errs = append(errs, fmt.Errorf("ports: %w", err))
		}
	}

	return errors.Join(errs...)
}

// NodeDir returns the working-copy directory for a node repository.
func (c *Config) NodeDir(repo string) string {
	return filepath.Join(c.Workspace, repo)
}

// SecretStorePath returns the absolute-or-workspace-relative secret
// store location.
func (c *Config) SecretStorePath() string {
	return c.workspacePath(c.SecretStore)
}

// TemplatesPath returns the templates directory location.
func (c *Config) TemplatesPath() string {
	return c.workspacePath(c.TemplatesDir)
}

func (c *Config) workspacePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Workspace, path)
}
