// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1}, // substitution
		{"abc", "ab", 1},  // deletion
		{"ab", "abc", 1},  // insertion
		{"abc", "bac", 2}, // transposition (counted as 2 edits)
		{"kitten", "sitting", 3},
		{"setup", "steup", 2},
		{"docker", "docekr", 2},
		{"clean", "claen", 2},
	}

	for _, test := range tests {
		got := levenshtein(test.a, test.b)
		if got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestLevenshtein_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"abc", "abd"},
		{"hello", "helo"},
		{"setup", "steup"},
	}

	for _, pair := range pairs {
		forward := levenshtein(pair[0], pair[1])
		reverse := levenshtein(pair[1], pair[0])
		if forward != reverse {
			t.Errorf("levenshtein(%q, %q) = %d, but reverse = %d",
				pair[0], pair[1], forward, reverse)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "setup"},
		{Name: "docker"},
		{Name: "nodes"},
		{Name: "clean"},
		{Name: "version"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"steup", "setup"},
		{"docekr", "docker"},
		{"node", "nodes"},
		{"claen", "clean"},
		{"completely-unrelated", ""},
	}

	for _, test := range tests {
		got := suggestCommand(test.input, commands)
		if got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flags := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("setup", pflag.ContinueOnError)
		flagSet.Bool("docker", false, "containerized mode")
		flagSet.String("branch", "demo-1", "revision to clone")
		flagSet.String("config", "", "configuration file")
		return flagSet
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--brnach", "main"}, "--branch"},
		{[]string{"--docekr"}, "--docker"},
		{[]string{"--config=x", "--confg=y"}, "--config"},
		{[]string{"--nothing-like-it"}, ""},
		{[]string{"positional-only"}, ""},
	}

	for _, test := range tests {
		got := suggestFlag(test.args, flags())
		if got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
