// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func execute(c *Command, args ...string) error {
	return c.Execute(context.Background(), args, testLogger())
}

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "koi-net",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "setup",
				Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
					called = "setup"
					return nil
				},
			},
		},
	}

	if err := execute(root, "setup"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "setup" {
		t.Errorf("dispatched to %q, want %q", called, "setup")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "koi-net",
		Subcommands: []*Command{
			{
				Name: "docker",
				Subcommands: []*Command{
					{
						Name: "up",
						Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
							called = "docker up"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := execute(root, "docker", "up", "extra-arg"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "docker up" {
		t.Errorf("dispatched to %q, want %q", called, "docker up")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra-arg" {
		t.Errorf("args = %v, want [extra-arg]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var branch string
	var target string

	command := &Command{
		Name: "setup",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("setup", pflag.ContinueOnError)
			flagSet.StringVar(&branch, "branch", "demo-1", "revision to clone")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := execute(command, "--branch", "main", "positional"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if branch != "main" {
		t.Errorf("branch = %q, want %q", branch, "main")
	}
	if target != "positional" {
		t.Errorf("target = %q, want %q", target, "positional")
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "koi-net",
		Subcommands: []*Command{
			{Name: "setup", Run: func(ctx context.Context, args []string, logger *slog.Logger) error { return nil }},
			{Name: "clean", Run: func(ctx context.Context, args []string, logger *slog.Logger) error { return nil }},
		},
	}

	err := execute(root, "steup")
	if err == nil {
		t.Fatal("Execute() succeeded with unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "setup"`) {
		t.Errorf("error lacks suggestion: %v", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "setup",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("setup", pflag.ContinueOnError)
			flagSet.Bool("docker", false, "containerized mode")
			flagSet.String("branch", "demo-1", "revision to clone")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error { return nil },
	}

	err := execute(command, "--brnach", "main")
	if err == nil {
		t.Fatal("Execute() succeeded with unknown flag")
	}
	if !strings.Contains(err.Error(), "--branch") {
		t.Errorf("error lacks flag suggestion: %v", err)
	}
}

func TestCommand_Execute_NoSubcommandShowsHelp(t *testing.T) {
	root := &Command{
		Name: "koi-net",
		Subcommands: []*Command{
			{Name: "setup", Summary: "Bootstrap the topology"},
		},
	}

	if err := execute(root); err == nil {
		t.Fatal("Execute() with no args succeeded, want error")
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	root := &Command{
		Name:        "koi-net",
		Description: "KOI-net topology bootstrapper.",
		Subcommands: []*Command{
			{Name: "setup", Summary: "Bootstrap the topology"},
			{Name: "nodes", Summary: "Print the node table"},
		},
		Examples: []Example{
			{Description: "Bootstrap for local execution", Command: "koi-net setup"},
		},
	}
	root.Subcommands[0].parent = root

	var buf bytes.Buffer
	root.PrintHelp(&buf)
	help := buf.String()

	for _, want := range []string{
		"KOI-net topology bootstrapper.",
		"setup",
		"Bootstrap the topology",
		"nodes",
		"koi-net setup",
		"Run 'koi-net <command> --help'",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestCommand_Execute_HelpFlagIsNotAnError(t *testing.T) {
	root := &Command{
		Name: "koi-net",
		Subcommands: []*Command{
			{Name: "setup", Summary: "Bootstrap the topology"},
		},
	}

	for _, arg := range []string{"--help", "-h", "help"} {
		if err := execute(root, arg); err != nil {
			t.Errorf("Execute(%q) error: %v", arg, err)
		}
	}
}
