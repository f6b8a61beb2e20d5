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

func cleanCommand() *cli.Command {
	var flags configFlags

	return &cli.Command{
		Name:    "clean",
		Summary: "Remove everything setup generated",
		Description: `Remove generated files from the workspace: configuration documents,
Dockerfiles, the compose manifest, virtual environments, node state
directories, and Python caches. Source trees, .env files, and the
secret store are left alone.`,
		Usage: "koi-net clean [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("clean", pflag.ContinueOnError)
			flags.register(flagSet)
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			return bootstrap.Clean(cfg, logger)
		},
	}
}
