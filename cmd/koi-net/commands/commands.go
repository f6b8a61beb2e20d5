// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

// Package commands builds the koi-net bootstrapper CLI command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BlockScience/koi-net-demo-v1/cmd/koi-net/cli"
	"github.com/BlockScience/koi-net-demo-v1/lib/version"
)

// Root builds and returns the complete koi-net CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "koi-net",
		Description: `koi-net: KOI-net topology bootstrapper.

Bootstrap a five-node KOI-net deployment (coordinator, GitHub and
HackMD sensors, GitHub and HackMD processors): acquire the node
repositories, synthesize each node's configuration, distribute
secrets, and prepare either local virtual environments or a
containerized deployment.`,
		Subcommands: []*cli.Command{
			setupCommand(),
			runCommand(),
			dockerCommand(),
			nodesCommand(),
			cleanCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("koi-net %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Bootstrap all nodes for local execution",
				Command:     "koi-net setup",
			},
			{
				Description: "Bootstrap for containers and start the deployment",
				Command:     "koi-net setup --docker && koi-net docker up",
			},
			{
				Description: "Run one node in the foreground",
				Command:     "koi-net run coordinator",
			},
			{
				Description: "Show the node table",
				Command:     "koi-net nodes",
			},
			{
				Description: "Remove everything setup generated",
				Command:     "koi-net clean",
			},
		},
	}
}
