// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package envfile

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEnsureStore_CreatesWithPlaceholders(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "global.env")
	created, err := EnsureStore(path, []string{"GITHUB_TOKEN", "HACKMD_API_TOKEN"})
	if err != nil {
		t.Fatalf("EnsureStore: %v", err)
	}
	if !created {
		t.Error("EnsureStore did not report creation")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"GITHUB_TOKEN=\n", "HACKMD_API_TOKEN=\n", "# GitHub API token"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("store missing %q:\n%s", want, content)
		}
	}
}

func TestEnsureStore_NeverOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "global.env")
	original := []byte("GITHUB_TOKEN=populated\n")
	if err := os.WriteFile(path, original, 0600); err != nil {
		t.Fatal(err)
	}

	created, err := EnsureStore(path, []string{"GITHUB_TOKEN", "HACKMD_API_TOKEN"})
	if err != nil {
		t.Fatalf("EnsureStore: %v", err)
	}
	if created {
		t.Error("EnsureStore reported creation for an existing file")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(content, original) {
		t.Errorf("existing store modified:\ngot:\n%s\nwant:\n%s", content, original)
	}
}

func TestLoadStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "global.env")
	content := "# comment\nGITHUB_TOKEN=abc123\nHACKMD_API_TOKEN=\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	values, err := LoadStore(path)
	if err != nil {
		t.Fatalf("LoadStore: %v", err)
	}
	if values["GITHUB_TOKEN"] != "abc123" {
		t.Errorf("GITHUB_TOKEN = %q, want abc123", values["GITHUB_TOKEN"])
	}
	if values["HACKMD_API_TOKEN"] != "" {
		t.Errorf("HACKMD_API_TOKEN = %q, want empty", values["HACKMD_API_TOKEN"])
	}
}

func TestLoadStore_Missing(t *testing.T) {
	t.Parallel()

	values, err := LoadStore(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("LoadStore: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("missing store produced values %v", values)
	}
}

func TestMissingKeys(t *testing.T) {
	t.Parallel()

	store := map[string]string{"GITHUB_TOKEN": "set", "HACKMD_API_TOKEN": ""}
	missing := MissingKeys(store, []string{"GITHUB_TOKEN", "HACKMD_API_TOKEN", "GITHUB_WEBHOOK_SECRET"})

	want := []string{"GITHUB_WEBHOOK_SECRET", "HACKMD_API_TOKEN"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("MissingKeys = %v, want %v", missing, want)
	}
}
