// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/BlockScience/koi-net-demo-v1/cmd/koi-net/cli"
	"github.com/BlockScience/koi-net-demo-v1/lib/topology"
	"github.com/BlockScience/koi-net-demo-v1/lib/venv"
)

// nodeLogFiles maps node IDs to the stale log files cleared before the
// node starts, so each run begins with a fresh log.
var nodeLogFiles = map[topology.NodeID]string{
	topology.HackMDSensor:    "node.sensor.log",
	topology.HackMDProcessor: "node.proc.log",
}

// nodeCLIDefaults maps the nodes that ship a management CLI to the
// command run when --cli is given without arguments.
var nodeCLIDefaults = map[topology.NodeID]string{
	topology.HackMDProcessor: "list",
	topology.GitHubProcessor: "list-repos",
}

func runCommand() *cli.Command {
	var flags configFlags
	var cliMode bool

	return &cli.Command{
		Name:    "run",
		Summary: "Run one node in the foreground",
		Description: `Run a single node via its provisioned virtual environment, in the
node's own directory, with this process's stdio attached. The node
keeps running until interrupted; its exit status becomes koi-net's
exit status.

With --cli, run the node's management CLI instead of the node itself.
Only the processor nodes ship one; without further arguments the
node's default command runs.

Nodes: ` + strings.Join(nodeNames(), ", ") + `.`,
		Usage: "koi-net run <node> [--cli [command...]] [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("run", pflag.ContinueOnError)
			flags.register(flagSet)
			flagSet.BoolVar(&cliMode, "cli", false, "run the node's management CLI instead of the node")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Start the coordinator",
				Command:     "koi-net run coordinator",
			},
			{
				Description: "Start the GitHub sensor",
				Command:     "koi-net run github-sensor",
			},
			{
				Description: "List the HackMD processor's documents",
				Command:     "koi-net run hackmd-processor --cli list",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("node name required (one of: %s)",
					strings.Join(nodeNames(), ", "))
			}
			if len(args) > 1 && !cliMode {
				return fmt.Errorf("unexpected arguments %v; node commands need --cli", args[1:])
			}

			def, err := topology.Lookup(topology.NodeID(args[0]))
			if err != nil {
				return err
			}

			if cliMode {
				defaultCommand, ok := nodeCLIDefaults[def.ID]
				if !ok {
					return fmt.Errorf("node %s has no management CLI (supported: %s)",
						def.ID, strings.Join(cliNodeNames(), ", "))
				}
				cliArgs := args[1:]
				if len(cliArgs) == 0 {
					cliArgs = []string{defaultCommand}
				}

				cfg, err := flags.load()
				if err != nil {
					return err
				}
				return runNodeCLI(ctx, cfg.NodeDir(def.Repo), def, cliArgs, logger)
			}

			cfg, err := flags.load()
			if err != nil {
				return err
			}

			return runNode(ctx, cfg.NodeDir(def.Repo), def, logger)
		},
	}
}

// runNode executes the node module in the foreground with the node
// directory as working directory.
func runNode(ctx context.Context, nodeDir string, def topology.Definition, logger *slog.Logger) error {
	python, err := venv.Python(nodeDir)
	if err != nil {
		return fmt.Errorf("%w; run 'koi-net setup' first", err)
	}

	if logFile, ok := nodeLogFiles[def.ID]; ok {
		path := filepath.Join(nodeDir, logFile)
		if err := os.Remove(path); err == nil {
			logger.Info("cleared stale node log", "path", path)
		}
	}

	logger.Info("starting node", "node", def.ID, "module", def.Module, "dir", nodeDir)

	return runForeground(ctx, nodeDir, python, []string{"-m", def.Module}, def)
}

// runNodeCLI executes the node's management CLI module in the
// foreground with the node directory as working directory.
func runNodeCLI(ctx context.Context, nodeDir string, def topology.Definition, cliArgs []string, logger *slog.Logger) error {
	python, err := venv.Python(nodeDir)
	if err != nil {
		return fmt.Errorf("%w; run 'koi-net setup' first", err)
	}

	logger.Info("running node management CLI", "node", def.ID, "args", cliArgs)

	return runForeground(ctx, nodeDir, python, append([]string{"-m", "cli"}, cliArgs...), def)
}

// runForeground runs an interpreter invocation with this process's
// stdio attached, forwarding a non-zero exit status as an ExitError.
func runForeground(ctx context.Context, nodeDir, python string, args []string, def topology.Definition) error {
	command := exec.CommandContext(ctx, python, args...)
	command.Dir = nodeDir
	command.Stdin = os.Stdin
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr

	if err := command.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return &cli.ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("running node %s: %w", def.ID, err)
	}
	return nil
}

func nodeNames() []string {
	ids := topology.NodeIDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return names
}

// cliNodeNames lists the nodes with a management CLI, in registry order.
func cliNodeNames() []string {
	var names []string
	for _, id := range topology.NodeIDs() {
		if _, ok := nodeCLIDefaults[id]; ok {
			names = append(names, string(id))
		}
	}
	return names
}
