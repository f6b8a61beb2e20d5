// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/BlockScience/koi-net-demo-v1/cmd/koi-net/cli"
	"github.com/BlockScience/koi-net-demo-v1/lib/topology"
)

func nodesCommand() *cli.Command {
	return &cli.Command{
		Name:    "nodes",
		Summary: "Print the node table",
		Description: `Print the fixed node catalog: every node's name, repository,
container service name, port, and the secret keys it needs. Read-only;
touches nothing in the workspace.`,
		Usage: "koi-net nodes",
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			printNodes(os.Stdout)
			return nil
		},
	}
}

func printNodes(out io.Writer) {
	tw := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "NODE\tREPOSITORY\tSERVICE\tPORT\tSECRETS")
	for _, def := range topology.Registry() {
		secrets := strings.Join(def.SecretKeys(), ", ")
		if secrets == "" {
			secrets = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			def.ID, def.Repo, def.Service, def.Port, secrets)
	}
	tw.Flush()
}
