// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package envfile

import (
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"
)

// storeHeader introduces the shared secret store file on first creation.
const storeHeader = `# Shared secret values for all koi-net nodes.
# Local setup merges these values into each node's .env file; container
# deployments load this file directly via the compose env_file setting.
# Fill in the values below before starting the nodes.
`

// keyComments documents the known secret keys in the seeded store.
// Keys without an entry get a generic comment.
var keyComments = map[string]string{
	"GITHUB_TOKEN": `# GitHub API token for accessing repository data.
# Create one at: https://github.com/settings/tokens
# Required scopes: repo, read:org`,
	"GITHUB_WEBHOOK_SECRET": `# GitHub webhook secret for validating incoming webhooks.
# Can be any random string you create.`,
	"HACKMD_API_TOKEN": `# HackMD API token for accessing note data.
# Get this from your HackMD account settings.`,
}

// EnsureStore guarantees a secret store file exists at path. On first
// use it is created with a commented, empty placeholder per key. An
// existing file is never modified — population and repair are the
// merge's job, and only ever non-destructively. Returns whether the
// file was created.
func EnsureStore(path string, keys []string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking secret store %s: %w", path, err)
	}

	file := &File{}
	file.lines = append(file.lines, Parse([]byte(storeHeader)).lines...)
	for _, key := range keys {
		comment := keyComments[key]
		if comment == "" {
			comment = "# " + key
		}
		file.lines = append(file.lines, line{raw: ""})
		file.lines = append(file.lines, Parse([]byte(comment)).lines...)
		file.Set(key, "")
	}

	if err := file.Write(path); err != nil {
		return false, err
	}
	return true, nil
}

// LoadStore reads the secret store into a key→value map. A missing
// store yields an empty map.
func LoadStore(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading secret store %s: %w", path, err)
	}
	return values, nil
}

// MissingKeys returns the declared keys that have no value in the
// store, sorted. Used to warn the operator before a deployment that
// cannot work without its credentials.
func MissingKeys(store map[string]string, keys []string) []string {
	var missing []string
	for _, key := range keys {
		if store[key] == "" {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
