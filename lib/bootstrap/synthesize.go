// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/BlockScience/koi-net-demo-v1/lib/topology"
)

// ConfigFile is the per-node configuration document file name.
const ConfigFile = "config.yaml"

// Synthesize produces a node's completed configuration document: the
// skeleton from the node's builder with mode-dependent addressing
// injected. The document is complete and ready to serialize.
func Synthesize(ctx *Context, def topology.Definition) *topology.Document {
	doc := def.Builder.Document(ctx.Port(def.ID))
	doc.Server.Host = ctx.Mode().BindHost()
	doc.KoiNet.NodeProfile.BaseURL = ctx.BaseURL(def)
	doc.KoiNet.FirstContact = ctx.FirstContact(def)
	return doc
}

// WriteDocument synthesizes a node's document and writes it to the
// node directory, unconditionally replacing any previous file — the
// document is regenerated in full on every run, and hand edits do not
// survive. Returns the written path.
func WriteDocument(ctx *Context, def topology.Definition, nodeDir string) (string, error) {
	doc := Synthesize(ctx, def)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("serializing document for %s: %w", def.ID, err)
	}

	path := filepath.Join(nodeDir, ConfigFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing document for %s: %w", def.ID, err)
	}
	return path, nil
}
