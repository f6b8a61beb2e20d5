// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package bootstrap

import "fmt"

// Mode selects the deployment style the topology is bootstrapped for.
type Mode string

const (
	// Local runs nodes as direct processes on loopback addresses,
	// each from a provisioned virtual environment.
	Local Mode = "local"

	// Containerized prepares nodes for compose: service-name
	// addressing, 0.0.0.0 binding, and generated deployment
	// artifacts. No runtime provisioning happens in this mode.
	Containerized Mode = "containerized"
)

// ParseMode converts a user-supplied string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Local, Containerized:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (valid: %s, %s)", s, Local, Containerized)
	}
}

// BindHost returns the server bind address for documents written in
// this mode. Containers must accept connections from outside their
// network namespace; local processes stay on loopback.
func (m Mode) BindHost() string {
	if m == Containerized {
		return "0.0.0.0"
	}
	return "127.0.0.1"
}
