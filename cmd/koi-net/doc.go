// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

// Koi-net is the CLI for bootstrapping a KOI-net demo topology. It
// provides subcommands for acquiring and configuring the five node
// repositories (setup), running individual nodes in the foreground
// (run), controlling the containerized deployment (docker up, docker
// down), inspecting the node catalog (nodes), and resetting the
// workspace (clean).
package main
