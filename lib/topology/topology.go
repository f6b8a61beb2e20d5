// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

// Package topology is the fixed catalog of koi-net node definitions.
//
// The registry is an ordered list of [Definition] values, one per node
// in the demo topology: the coordinator, two sensors, and two
// processors. Each definition carries the node's repository and module
// names, its assigned port, the compose service name, its secret
// requirements, and a [DocumentBuilder] that produces the node's
// configuration document skeleton.
//
// Skeleton builders are pure: the same port always yields a structurally
// identical document. Mode-dependent values (bind host, advertised base
// URL, first contact) are injected in a later pass by lib/bootstrap,
// which is why skeletons default to loopback addressing and an empty
// first_contact.
package topology

import (
	"errors"
	"fmt"
	"sort"
)

// NodeID identifies a node in the topology.
type NodeID string

// The five nodes of the demo topology.
const (
	Coordinator     NodeID = "coordinator"
	GitHubSensor    NodeID = "github-sensor"
	HackMDSensor    NodeID = "hackmd-sensor"
	GitHubProcessor NodeID = "github-processor"
	HackMDProcessor NodeID = "hackmd-processor"
)

// SecretRequirement declares one secret a node needs: the logical name
// the node's config refers to it by, and the environment variable key
// it is stored under in .env files and the shared secret store.
type SecretRequirement struct {
	Name string
	Key  string
}

// DocumentBuilder produces a node's configuration document skeleton
// from its assigned port. Implementations must be deterministic and
// must leave first_contact empty; addressing is resolved later.
type DocumentBuilder interface {
	Document(port int) *Document
}

// Definition describes one node in the topology.
type Definition struct {
	// ID is the node identifier, also used as the CLI verb for
	// running the node.
	ID NodeID

	// Repo is the node's repository (and working directory) name.
	Repo string

	// Module is the Python module launched to run the node, and the
	// module-name token substituted into container build files.
	Module string

	// Service is the compose service name. This is an explicit
	// mapping, not derived from Repo at runtime.
	Service string

	// Port is the node's assigned port from the fixed table.
	Port int

	// Secrets are the node's secret requirements, in declaration
	// order. Empty for nodes that need no credentials.
	Secrets []SecretRequirement

	// Builder produces the node's config document skeleton.
	Builder DocumentBuilder
}

// IsCoordinator reports whether this definition is the coordinator.
func (d Definition) IsCoordinator() bool {
	return d.ID == Coordinator
}

// SecretKeys returns the environment variable keys of the node's
// secret requirements, in declaration order.
func (d Definition) SecretKeys() []string {
	keys := make([]string, len(d.Secrets))
	for i, secret := range d.Secrets {
		keys[i] = secret.Key
	}
	return keys
}

// LegacyRepoNames maps retired repository directory names to their
// current names. Workspaces bootstrapped by older tool versions may
// still have the old directory on disk; the bootstrapper renames it
// before resolving.
var LegacyRepoNames = map[string]string{
	"koi-net-processor-gh-node": "koi-net-github-processor-node",
}

// Registry returns the topology in processing order. The coordinator
// is first so its address is known before any dependent node's
// document is emitted.
func Registry() []Definition {
	return []Definition{
		{
			ID:      Coordinator,
			Repo:    "koi-net-coordinator-node",
			Module:  "coordinator_node",
			Service: "coordinator",
			Port:    8080,
			Builder: coordinatorBuilder{},
		},
		{
			ID:      HackMDSensor,
			Repo:    "koi-net-hackmd-sensor-node",
			Module:  "hackmd_sensor_node",
			Service: "hackmd-sensor",
			Port:    8002,
			Secrets: []SecretRequirement{
				{Name: "hackmd_api_token", Key: "HACKMD_API_TOKEN"},
			},
			Builder: hackmdSensorBuilder{},
		},
		{
			ID:      GitHubSensor,
			Repo:    "koi-net-github-sensor-node",
			Module:  "github_sensor_node",
			Service: "github-sensor",
			Port:    8001,
			Secrets: []SecretRequirement{
				{Name: "github_token", Key: "GITHUB_TOKEN"},
				{Name: "github_webhook_secret", Key: "GITHUB_WEBHOOK_SECRET"},
			},
			Builder: githubSensorBuilder{},
		},
		{
			ID:      GitHubProcessor,
			Repo:    "koi-net-github-processor-node",
			Module:  "github_processor_node",
			Service: "github-processor",
			Port:    8011,
			Secrets: []SecretRequirement{
				{Name: "github_token", Key: "GITHUB_TOKEN"},
			},
			Builder: githubProcessorBuilder{},
		},
		{
			ID:      HackMDProcessor,
			Repo:    "koi-net-hackmd-processor-node",
			Module:  "hackmd_processor_node",
			Service: "hackmd-processor",
			Port:    8012,
			Builder: hackmdProcessorBuilder{},
		},
	}
}

// Lookup returns the definition for the given node ID.
func Lookup(id NodeID) (Definition, error) {
	for _, def := range Registry() {
		if def.ID == id {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("unknown node %q (known nodes: %v)", id, NodeIDs())
}

// NodeIDs returns all node identifiers in registry order.
func NodeIDs() []NodeID {
	registry := Registry()
	ids := make([]NodeID, len(registry))
	for i, def := range registry {
		ids[i] = def.ID
	}
	return ids
}

// AllSecretKeys returns the union of every node's secret keys, sorted.
// This seeds the shared secret store with one placeholder per key.
func AllSecretKeys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, def := range Registry() {
		for _, secret := range def.Secrets {
			if !seen[secret.Key] {
				seen[secret.Key] = true
				keys = append(keys, secret.Key)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the structural invariants of a topology: exactly one
// coordinator, pairwise-distinct IDs, repository names, service names,
// and ports, and a builder on every definition.
func Validate(defs []Definition) error {
	var errs []error

	coordinators := 0
	ids := make(map[NodeID]bool)
	repos := make(map[string]bool)
	services := make(map[string]bool)
	ports := make(map[int]NodeID)

	for _, def := range defs {
		if def.IsCoordinator() {
			coordinators++
		}
		if ids[def.ID] {
			errs = append(errs, fmt.Errorf("duplicate node ID %q", def.ID))
		}
		ids[def.ID] = true
		if repos[def.Repo] {
			errs = append(errs, fmt.Errorf("duplicate repository %q", def.Repo))
		}
		repos[def.Repo] = true
		if services[def.Service] {
			errs = append(errs, fmt.Errorf("duplicate service name %q", def.Service))
		}
		services[def.Service] = true
		if other, taken := ports[def.Port]; taken {
			errs = append(errs, fmt.Errorf("port %d assigned to both %q and %q", def.Port, other, def.ID))
		}
		ports[def.Port] = def.ID
		if def.Builder == nil {
			errs = append(errs, fmt.Errorf("node %q has no document builder", def.ID))
		}
	}

	if coordinators != 1 {
		errs = append(errs, fmt.Errorf("topology must have exactly one coordinator, found %d", coordinators))
	}

	return errors.Join(errs...)
}
