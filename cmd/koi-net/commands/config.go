// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package commands

import (
	"github.com/spf13/pflag"

	"github.com/BlockScience/koi-net-demo-v1/lib/config"
)

// configFlags carries the configuration-selection flags shared by every
// command that touches the workspace.
type configFlags struct {
	configFile string
	workspace  string
}

func (f *configFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.configFile, "config", "", "bootstrapper configuration file (YAML)")
	flagSet.StringVar(&f.workspace, "workspace", "", "workspace directory (overrides configuration)")
}

// load resolves the effective configuration: defaults, then the
// configuration file if given, then flag overrides.
func (f *configFlags) load() (*config.Config, error) {
	cfg := config.Default()
	if f.configFile != "" {
		loaded, err := config.LoadFile(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if f.workspace != "" {
		cfg.Workspace = f.workspace
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
