// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/BlockScience/koi-net-demo-v1/cmd/koi-net/cli"
	"github.com/BlockScience/koi-net-demo-v1/lib/compose"
)

func dockerCommand() *cli.Command {
	return &cli.Command{
		Name:    "docker",
		Summary: "Start or stop the containerized deployment",
		Description: `Control the containerized deployment built by 'koi-net setup --docker'
via docker compose, using the generated manifest in the workspace.`,
		Subcommands: []*cli.Command{
			dockerUpCommand(),
			dockerDownCommand(),
		},
	}
}

func dockerUpCommand() *cli.Command {
	var flags configFlags

	return &cli.Command{
		Name:    "up",
		Summary: "Start all services in the background",
		Usage:   "koi-net docker up [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("up", pflag.ContinueOnError)
			flags.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			return compose.NewDeployment(cfg.Workspace).Up(ctx)
		},
	}
}

func dockerDownCommand() *cli.Command {
	var flags configFlags

	return &cli.Command{
		Name:    "down",
		Summary: "Stop all services",
		Usage:   "koi-net docker down [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("down", pflag.ContinueOnError)
			flags.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			return compose.NewDeployment(cfg.Workspace).Down(ctx)
		},
	}
}
