// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package compose

import (
	"context"
	"strings"
	"testing"
)

func TestUp_MissingManifest(t *testing.T) {
	t.Parallel()

	deployment := NewDeployment(t.TempDir())
	err := deployment.Up(context.Background())
	if err == nil {
		t.Fatal("expected error without a compose manifest")
	}
	if !strings.Contains(err.Error(), "setup --docker") {
		t.Errorf("error = %v, want setup guidance", err)
	}
}

func TestDown_MissingManifest(t *testing.T) {
	t.Parallel()

	deployment := NewDeployment(t.TempDir())
	if err := deployment.Down(context.Background()); err == nil {
		t.Fatal("expected error without a compose manifest")
	}
}
