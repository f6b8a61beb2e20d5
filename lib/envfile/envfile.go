// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

// Package envfile reads, merges, and writes flat KEY=VALUE environment
// files: each node's local .env and the shared secret store
// (global.env).
//
// Writes go through a line-preserving model so that comments, blank
// lines, and entries the bootstrapper does not manage survive a rewrite
// verbatim. Reading secret values out of the store uses godotenv, which
// handles quoting and export prefixes.
//
// The merge contract is non-destructive: a populated local value is
// never replaced by an empty store value, and repeated merges against
// an unchanged store leave the file byte-identical.
package envfile

import (
	"fmt"
	"os"
	"strings"
)

// line is one physical line of an env file. Pair lines carry a parsed
// key and value; all other lines (comments, blanks, malformed entries)
// are kept verbatim in raw.
type line struct {
	raw    string
	key    string
	value  string
	isPair bool
}

// File is an env file held in memory with full line fidelity.
type File struct {
	lines []line
}

// Parse builds a File from raw env-file content. A line is treated as
// a KEY=VALUE pair when it is non-blank, is not a comment, and contains
// an '='; everything else is preserved untouched.
func Parse(content []byte) *File {
	file := &File{}
	if len(content) == 0 {
		return file
	}

	text := strings.TrimSuffix(string(content), "\n")
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || !strings.Contains(trimmed, "=") {
			file.lines = append(file.lines, line{raw: raw})
			continue
		}
		key, value, _ := strings.Cut(trimmed, "=")
		file.lines = append(file.lines, line{
			raw:    raw,
			key:    strings.TrimSpace(key),
			value:  value,
			isPair: true,
		})
	}
	return file
}

// Load reads an env file from disk. A missing file yields an empty
// File, matching first-use behavior.
func Load(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return Parse(content), nil
}

// Lookup returns the value for key and whether the key is present.
func (f *File) Lookup(key string) (string, bool) {
	for _, l := range f.lines {
		if l.isPair && l.key == key {
			return l.value, true
		}
	}
	return "", false
}

// Set updates the value of an existing key or appends a new pair line.
func (f *File) Set(key, value string) {
	for i, l := range f.lines {
		if l.isPair && l.key == key {
			f.lines[i].value = value
			f.lines[i].raw = key + "=" + value
			return
		}
	}
	f.lines = append(f.lines, line{
		raw:    key + "=" + value,
		key:    key,
		value:  value,
		isPair: true,
	})
}

// Bytes renders the file, one line per entry, each newline-terminated.
func (f *File) Bytes() []byte {
	var builder strings.Builder
	for _, l := range f.lines {
		builder.WriteString(l.raw)
		builder.WriteByte('\n')
	}
	return []byte(builder.String())
}

// Write renders the file to path, replacing any previous content.
// Secret-bearing files are written owner-only.
func (f *File) Write(path string) error {
	if err := os.WriteFile(path, f.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing env file %s: %w", path, err)
	}
	return nil
}
