// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/BlockScience/koi-net-demo-v1/cmd/koi-net/cli"
	"github.com/BlockScience/koi-net-demo-v1/lib/bootstrap"
)

func setupCommand() *cli.Command {
	var flags configFlags
	var docker bool
	var branch string

	return &cli.Command{
		Name:    "setup",
		Summary: "Acquire, configure, and provision the full topology",
		Description: `Bootstrap all five nodes: clone or refresh each node repository,
write its configuration document, merge its secrets from the global
store, and prepare virtual environments (local mode) or Dockerfiles
and a compose manifest (--docker).

Rerunning setup is safe: source trees are refreshed in place,
documents are regenerated, and populated secrets are never
overwritten with empty values.`,
		Usage: "koi-net setup [--docker] [--branch <revision>] [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("setup", pflag.ContinueOnError)
			flags.register(flagSet)
			flagSet.BoolVar(&docker, "docker", false, "bootstrap for containerized deployment")
			flagSet.StringVar(&branch, "branch", "", "revision to request for every node repository")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Local bootstrap with the default branch",
				Command:     "koi-net setup",
			},
			{
				Description: "Containerized bootstrap from a feature branch",
				Command:     "koi-net setup --docker --branch demo-2",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if branch != "" {
				cfg.Branch = branch
			}

			mode := bootstrap.Local
			if docker {
				mode = bootstrap.Containerized
			}

			return bootstrap.New(cfg, logger).Run(ctx, mode)
		},
	}
}
