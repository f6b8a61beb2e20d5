// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

// Package artifact renders the containerized-deployment files: one
// build file (Dockerfile) per node and the shared compose manifest.
//
// Rendering is all-or-nothing. Every artifact is first rendered into a
// scratch directory inside the workspace; only when all renders have
// succeeded are the files moved into place. A missing template or a
// failed render therefore leaves the workspace untouched — there is no
// state where some nodes have build files and the manifest is absent.
package artifact

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BlockScience/koi-net-demo-v1/lib/topology"
)

// Template file names looked up under the generator's TemplatesDir.
const (
	DockerfileTemplate = "Dockerfile.template"
	ComposeTemplate    = "docker-compose.template.yml"
)

// ComposeFile is the manifest file name written to the workspace root.
const ComposeFile = "docker-compose.yml"

// argPortLine matches the build file's default-port declaration.
var argPortLine = regexp.MustCompile(`(?m)^ARG PORT=\d+$`)

// Generator renders deployment artifacts for a topology.
type Generator struct {
	// TemplatesDir holds the two template files. Rendering fails
	// without writing anything when either is missing.
	TemplatesDir string

	// Workspace is the directory containing the node repositories and
	// receiving the compose manifest.
	Workspace string

	// Logger must be non-nil.
	Logger *slog.Logger
}

// Generate renders every node's build file and the compose manifest,
// then commits them: <workspace>/<repo>/Dockerfile per node and
// <workspace>/docker-compose.yml. Ports maps each node to its assigned
// port; template occurrences of a node's catalog port are rewritten to
// the assigned one.
func (g *Generator) Generate(defs []topology.Definition, ports map[topology.NodeID]int) error {
	dockerfileTemplate, err := g.readTemplate(DockerfileTemplate)
	if err != nil {
		return err
	}
	composeTemplate, err := g.readTemplate(ComposeTemplate)
	if err != nil {
		return err
	}

	staging, err := os.MkdirTemp(g.Workspace, ".artifacts-")
	if err != nil {
		return fmt.Errorf("creating artifact staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	// Render phase: everything goes into staging first.
	for _, def := range defs {
		content := RenderDockerfile(dockerfileTemplate, def.Module, ports[def.ID])
		stagingPath := filepath.Join(staging, def.Repo+".Dockerfile")
		if err := os.WriteFile(stagingPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("staging build file for %s: %w", def.ID, err)
		}
	}

	manifest := RenderManifest(composeTemplate, defs, ports)
	if err := os.WriteFile(filepath.Join(staging, ComposeFile), []byte(manifest), 0644); err != nil {
		return fmt.Errorf("staging compose manifest: %w", err)
	}

	// Commit phase: every render succeeded, move files into place.
	for _, def := range defs {
		target := filepath.Join(g.Workspace, def.Repo, "Dockerfile")
		if err := os.Rename(filepath.Join(staging, def.Repo+".Dockerfile"), target); err != nil {
			return fmt.Errorf("committing build file for %s: %w", def.ID, err)
		}
		g.Logger.Info("wrote build file", "node", def.ID, "path", target, "port", ports[def.ID])
	}

	composeTarget := filepath.Join(g.Workspace, ComposeFile)
	if err := os.Rename(filepath.Join(staging, ComposeFile), composeTarget); err != nil {
		return fmt.Errorf("committing compose manifest: %w", err)
	}
	g.Logger.Info("wrote compose manifest", "path", composeTarget)

	return nil
}

// readTemplate loads a template file. A missing template is a fatal,
// user-facing condition: halting beats emitting broken build files.
func (g *Generator) readTemplate(name string) (string, error) {
	path := filepath.Join(g.TemplatesDir, name)
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("template %s not found at %s; it ships with this repository's templates directory", name, path)
	}
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", path, err)
	}
	return string(content), nil
}

// RenderDockerfile substitutes the module-name tokens (${MODULE_NAME}
// and $MODULE_NAME) and the default-port declaration into a build-file
// template.
func RenderDockerfile(template, module string, port int) string {
	content := strings.ReplaceAll(template, "${MODULE_NAME}", module)
	content = strings.ReplaceAll(content, "$MODULE_NAME", module)
	return argPortLine.ReplaceAllString(content, fmt.Sprintf("ARG PORT=%d", port))
}

// RenderManifest rewrites every service's template port to its
// assigned port in one simultaneous substitution. A service's assigned
// port may equal another service's template port, so substituting
// service by service would let a later pass rewrite an earlier
// service's freshly assigned tokens. Template ports are first moved to
// per-service placeholders (template ports are pairwise distinct, so
// this pass cannot alias), then the placeholders become the assigned
// ports.
func RenderManifest(template string, defs []topology.Definition, ports map[topology.NodeID]int) string {
	manifest := template
	for _, def := range defs {
		if ports[def.ID] == def.Port {
			continue
		}
		manifest = replacePortTokens(manifest, strconv.Itoa(def.Port), portPlaceholder(def))
	}
	for _, def := range defs {
		if ports[def.ID] == def.Port {
			continue
		}
		manifest = replacePortTokens(manifest, portPlaceholder(def), strconv.Itoa(ports[def.ID]))
	}
	return manifest
}

// portPlaceholder returns a token that cannot occur in a manifest: the
// service name fenced by NUL bytes.
func portPlaceholder(def topology.Definition) string {
	return "\x00" + def.Service + "\x00"
}

// ReplaceServicePort rewrites every textual occurrence of a single
// service's template port with its assigned port. Only safe in
// isolation; use RenderManifest for a full manifest, where one
// service's assigned port may equal another's template port.
func ReplaceServicePort(manifest string, templatePort, port int) string {
	if templatePort == port {
		return manifest
	}
	return replacePortTokens(manifest, strconv.Itoa(templatePort), strconv.Itoa(port))
}

// replacePortTokens rewrites the three textual contexts a service port
// appears in: the build argument, the host:container port mapping, and
// loopback address references. All three must move together or the
// manifest is inconsistent.
func replacePortTokens(manifest, from, to string) string {
	replacer := strings.NewReplacer(
		"PORT="+from, "PORT="+to,
		"\""+from+":"+from+"\"", "\""+to+":"+to+"\"",
		"localhost:"+from, "localhost:"+to,
	)
	return replacer.Replace(manifest)
}
