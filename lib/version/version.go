// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

// Package version carries the build metadata stamped into the koi-net
// binary.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/BlockScience/koi-net-demo-v1/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Full renders the version block printed by "koi-net version".
func Full() string {
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)\n  Go: %s\n  Platform: %s/%s",
		Version, GitCommit, dirty, BuildTime,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
