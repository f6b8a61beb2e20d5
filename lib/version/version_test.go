// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package version

import (
	"strings"
	"testing"
)

func TestFull(t *testing.T) {
	full := Full()
	for _, want := range []string{Version, GitCommit, BuildTime, "Go: "} {
		if !strings.Contains(full, want) {
			t.Errorf("Full() missing %q:\n%s", want, full)
		}
	}
	if strings.Contains(full, "-dirty") {
		t.Errorf("Full() marked dirty with GitDirty=%q:\n%s", GitDirty, full)
	}
}

func TestFullDirtyMarker(t *testing.T) {
	defer func(prev string) { GitDirty = prev }(GitDirty)
	GitDirty = "true"

	if !strings.Contains(Full(), "-dirty") {
		t.Error("Full() missing dirty marker with GitDirty=true")
	}
}
