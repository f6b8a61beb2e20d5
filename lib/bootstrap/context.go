// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package bootstrap

import (
	"fmt"

	"github.com/BlockScience/koi-net-demo-v1/lib/topology"
)

// Context carries everything address synthesis needs, computed once
// before any document is emitted: the deployment mode and the full
// port assignment, from which the coordinator's base address follows.
// Passing it explicitly into each node's synthesis step is what makes
// synthesis a pure function of (mode, registry, port table).
type Context struct {
	mode           Mode
	defs           []topology.Definition
	ports          map[topology.NodeID]int
	coordinatorURL string
}

// NewContext validates the topology, applies port overrides, and
// resolves the coordinator's base address for the given mode.
func NewContext(mode Mode, defs []topology.Definition, portOverrides map[string]int) (*Context, error) {
	if err := topology.Validate(defs); err != nil {
		return nil, fmt.Errorf("invalid topology: %w", err)
	}

	ports := make(map[topology.NodeID]int, len(defs))
	for _, def := range defs {
		ports[def.ID] = def.Port
		if override, ok := portOverrides[string(def.ID)]; ok {
			ports[def.ID] = override
		}
	}

	// Overrides may collide with catalog ports of other nodes.
	seen := make(map[int]topology.NodeID, len(defs))
	for _, def := range defs {
		port := ports[def.ID]
		if other, taken := seen[port]; taken {
			return nil, fmt.Errorf("port %d assigned to both %q and %q", port, other, def.ID)
		}
		seen[port] = def.ID
	}

	ctx := &Context{mode: mode, defs: defs, ports: ports}
	for _, def := range defs {
		if def.IsCoordinator() {
			ctx.coordinatorURL = ctx.BaseURL(def)
			break
		}
	}
	return ctx, nil
}

// Mode returns the deployment mode.
func (c *Context) Mode() Mode {
	return c.mode
}

// Definitions returns the topology in processing order.
func (c *Context) Definitions() []topology.Definition {
	return c.defs
}

// Port returns the node's assigned port.
func (c *Context) Port(id topology.NodeID) int {
	return c.ports[id]
}

// Ports returns the full port assignment.
func (c *Context) Ports() map[topology.NodeID]int {
	return c.ports
}

// BaseURL computes a node's advertised base address: loopback-IP form
// in Local mode, service-name form in Containerized mode.
func (c *Context) BaseURL(def topology.Definition) string {
	host := "127.0.0.1"
	if c.mode == Containerized {
		host = def.Service
	}
	return fmt.Sprintf("http://%s:%d/koi-net", host, c.ports[def.ID])
}

// CoordinatorURL returns the coordinator's base address.
func (c *Context) CoordinatorURL() string {
	return c.coordinatorURL
}

// FirstContact returns the address a node dials on startup: empty for
// the coordinator itself, the coordinator's base address for everyone
// else.
func (c *Context) FirstContact(def topology.Definition) string {
	if def.IsCoordinator() {
		return ""
	}
	return c.coordinatorURL
}
