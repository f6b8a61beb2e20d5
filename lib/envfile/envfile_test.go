// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package envfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	content := []byte(`# header comment

GITHUB_TOKEN=abc123
export WEIRD_LINE
HACKMD_API_TOKEN=
`)

	file := Parse(content)
	if !bytes.Equal(file.Bytes(), content) {
		t.Errorf("round trip changed content:\ngot:\n%s\nwant:\n%s", file.Bytes(), content)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	file := Parse([]byte("A=1\nB=\n# C=3\n"))

	if value, ok := file.Lookup("A"); !ok || value != "1" {
		t.Errorf("Lookup(A) = %q, %v; want 1, true", value, ok)
	}
	if value, ok := file.Lookup("B"); !ok || value != "" {
		t.Errorf("Lookup(B) = %q, %v; want empty, true", value, ok)
	}
	if _, ok := file.Lookup("C"); ok {
		t.Error("Lookup(C) found a commented-out entry")
	}
}

func TestSetUpdatesInPlace(t *testing.T) {
	t.Parallel()

	file := Parse([]byte("# keep me\nA=old\nB=2\n"))
	file.Set("A", "new")

	want := "# keep me\nA=new\nB=2\n"
	if string(file.Bytes()) != want {
		t.Errorf("Bytes() = %q, want %q", file.Bytes(), want)
	}
}

func TestSetAppendsMissing(t *testing.T) {
	t.Parallel()

	file := Parse([]byte("A=1\n"))
	file.Set("B", "2")

	want := "A=1\nB=2\n"
	if string(file.Bytes()) != want {
		t.Errorf("Bytes() = %q, want %q", file.Bytes(), want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	file, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(file.Bytes()) != 0 {
		t.Errorf("missing file produced content %q", file.Bytes())
	}
}

func TestMerge_NonDestructive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("GITHUB_TOKEN=existingvalue\n"), 0600); err != nil {
		t.Fatal(err)
	}

	// An empty store value must never erase a populated local value.
	changed, err := Merge(path, []string{"GITHUB_TOKEN"}, map[string]string{"GITHUB_TOKEN": ""})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if changed {
		t.Error("merge reported a change for a no-op")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "GITHUB_TOKEN=existingvalue\n" {
		t.Errorf("file = %q, want existing value preserved", content)
	}
}

func TestMerge_Propagation(t *testing.T) {
	t.Parallel()

	// No local file: the store's value must propagate into a new one.
	path := filepath.Join(t.TempDir(), ".env")
	changed, err := Merge(path, []string{"GITHUB_TOKEN"}, map[string]string{"GITHUB_TOKEN": "abc123"})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !changed {
		t.Error("merge did not report creating the file")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "GITHUB_TOKEN=abc123\n" {
		t.Errorf("file = %q, want GITHUB_TOKEN=abc123", content)
	}
}

func TestMerge_AppendsEmptyPlaceholder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	if _, err := Merge(path, []string{"HACKMD_API_TOKEN"}, nil); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "HACKMD_API_TOKEN=\n" {
		t.Errorf("file = %q, want empty placeholder", content)
	}
}

func TestMerge_PreservesUnrelatedLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	original := "# node-local settings\nCUSTOM_FLAG=yes\n"
	if err := os.WriteFile(path, []byte(original), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Merge(path, []string{"GITHUB_TOKEN"}, map[string]string{"GITHUB_TOKEN": "tok"}); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := original + "GITHUB_TOKEN=tok\n"
	if string(content) != want {
		t.Errorf("file = %q, want %q", content, want)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	store := map[string]string{"GITHUB_TOKEN": "tok", "GITHUB_WEBHOOK_SECRET": ""}
	keys := []string{"GITHUB_TOKEN", "GITHUB_WEBHOOK_SECRET"}

	if _, err := Merge(path, keys, store); err != nil {
		t.Fatalf("first Merge: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	changed, err := Merge(path, keys, store)
	if err != nil {
		t.Fatalf("second Merge: %v", err)
	}
	if changed {
		t.Error("second merge reported a change")
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("second merge changed the file:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}
