// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/BlockScience/koi-net-demo-v1/lib/topology"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRootTree(t *testing.T) {
	root := Root()

	want := []string{"setup", "run", "docker", "nodes", "clean", "version"}
	seen := make(map[string]bool)
	for _, sub := range root.Subcommands {
		if seen[sub.Name] {
			t.Errorf("duplicate command %q", sub.Name)
		}
		seen[sub.Name] = true
		if sub.Summary == "" {
			t.Errorf("command %q has no summary", sub.Name)
		}
	}
	for _, name := range want {
		if !seen[name] {
			t.Errorf("command %q missing from tree", name)
		}
	}
}

func TestRootHelp(t *testing.T) {
	var buf bytes.Buffer
	Root().PrintHelp(&buf)
	help := buf.String()

	for _, want := range []string{"setup", "docker", "koi-net run coordinator"} {
		if !strings.Contains(help, want) {
			t.Errorf("root help missing %q:\n%s", want, help)
		}
	}
}

func TestPrintNodes(t *testing.T) {
	var buf bytes.Buffer
	printNodes(&buf)
	table := buf.String()

	for _, def := range topology.Registry() {
		if !strings.Contains(table, string(def.ID)) {
			t.Errorf("node table missing %s:\n%s", def.ID, table)
		}
	}
	if !strings.Contains(table, "GITHUB_TOKEN") {
		t.Errorf("node table missing secret keys:\n%s", table)
	}
	if !strings.Contains(table, "8080") {
		t.Errorf("node table missing ports:\n%s", table)
	}
}

func TestRunCommandRejectsUnknownNode(t *testing.T) {
	err := runCommand().Execute(context.Background(), []string{"no-such-node"}, testLogger())
	if err == nil {
		t.Fatal("run accepted an unknown node")
	}
}

func TestRunCommandRequiresNodeArgument(t *testing.T) {
	err := runCommand().Execute(context.Background(), nil, testLogger())
	if err == nil {
		t.Fatal("run accepted missing node argument")
	}
	if !strings.Contains(err.Error(), "coordinator") {
		t.Errorf("error does not list valid nodes: %v", err)
	}
}

func TestNodeLogFilesCoverOnlyKnownNodes(t *testing.T) {
	for id := range nodeLogFiles {
		if _, err := topology.Lookup(id); err != nil {
			t.Errorf("log file mapped for unknown node %s", id)
		}
	}
}

func TestRunCommandCLIRejectsNodesWithoutOne(t *testing.T) {
	err := runCommand().Execute(context.Background(),
		[]string{"coordinator", "--cli"}, testLogger())
	if err == nil {
		t.Fatal("--cli accepted for a node without a management CLI")
	}
	if !strings.Contains(err.Error(), "github-processor") {
		t.Errorf("error does not list CLI-capable nodes: %v", err)
	}
}

func TestRunCommandRejectsExtraArgsWithoutCLI(t *testing.T) {
	err := runCommand().Execute(context.Background(),
		[]string{"hackmd-processor", "list"}, testLogger())
	if err == nil {
		t.Fatal("extra arguments accepted without --cli")
	}
	if !strings.Contains(err.Error(), "--cli") {
		t.Errorf("error does not point at --cli: %v", err)
	}
}

func TestNodeCLIDefaults(t *testing.T) {
	want := map[topology.NodeID]string{
		topology.HackMDProcessor: "list",
		topology.GitHubProcessor: "list-repos",
	}
	for id, defaultCommand := range want {
		if got := nodeCLIDefaults[id]; got != defaultCommand {
			t.Errorf("default CLI command for %s = %q, want %q", id, got, defaultCommand)
		}
	}
	if len(nodeCLIDefaults) != len(want) {
		t.Errorf("%d nodes carry a management CLI, want %d", len(nodeCLIDefaults), len(want))
	}
}
