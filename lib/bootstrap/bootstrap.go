// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

// Package bootstrap is the topology bootstrapper core. It turns the
// fixed node catalog in lib/topology into a runnable deployment:
// resolved source trees, one configuration document per node, merged
// secret files, and — for containerized deployments — build files and
// a compose manifest.
//
// Processing is strictly sequential over the registry order, with the
// coordinator first so its address exists before any dependent node's
// document. Every step is idempotent or overwrite-safe: a fatal error
// at one node stops the run, and rerunning from scratch is the
// recovery path. Concurrent invocations against the same workspace are
// not supported.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/BlockScience/koi-net-demo-v1/lib/artifact"
	"github.com/BlockScience/koi-net-demo-v1/lib/config"
	"github.com/BlockScience/koi-net-demo-v1/lib/envfile"
	"github.com/BlockScience/koi-net-demo-v1/lib/git"
	"github.com/BlockScience/koi-net-demo-v1/lib/topology"
	"github.com/BlockScience/koi-net-demo-v1/lib/venv"
)

// Provisioner is the opaque "ensure a runtime environment exists"
// collaborator used in Local mode.
type Provisioner interface {
	Provision(ctx context.Context, dir string) error
}

// Bootstrapper drives the full acquire-and-configure pass.
type Bootstrapper struct {
	Config   *config.Config
	Logger   *slog.Logger
	Resolver *git.Resolver

	// Provisioner prepares each node's execution environment in Local
	// mode. Defaults to the Python venv provisioner when nil.
	Provisioner Provisioner

	// Output receives the system overview table. Defaults to stdout.
	Output io.Writer
}

// New returns a Bootstrapper with the standard collaborators wired up.
func New(cfg *config.Config, logger *slog.Logger) *Bootstrapper {
	return &Bootstrapper{
		Config:      cfg,
		Logger:      logger,
		Resolver:    &git.Resolver{RemoteBase: cfg.RemoteBase, Logger: logger},
		Provisioner: &venv.Provisioner{Logger: logger},
		Output:      os.Stdout,
	}
}

// Run executes the bootstrap for the given mode: per node in registry
// order, resolve the source tree, write the configuration document,
// and merge the node's secrets; then provision (Local) or generate
// deployment artifacts (Containerized). Fatal errors stop the run and
// leave already-written state for prior nodes intact.
func (b *Bootstrapper) Run(ctx context.Context, mode Mode) error {
	bctx, err := NewContext(mode, topology.Registry(), b.Config.Ports)
	if err != nil {
		return err
	}

	storePath := b.Config.SecretStorePath()
	created, err := envfile.EnsureStore(storePath, topology.AllSecretKeys())
	if err != nil {
		return err
	}
	if created {
		b.Logger.Info("created secret store with empty placeholders", "path", storePath)
	}
	store, err := envfile.LoadStore(storePath)
	if err != nil {
		return err
	}
	if missing := envfile.MissingKeys(store, topology.AllSecretKeys()); len(missing) > 0 {
		b.Logger.Warn("secret store has unset values; nodes needing them will not work",
			"path", storePath, "keys", missing)
	}

	var rows []overviewRow
	for _, def := range bctx.Definitions() {
		row, err := b.processNode(ctx, bctx, def, store)
		if err != nil {
			return fmt.Errorf("node %s: %w", def.ID, err)
		}
		rows = append(rows, row)
	}

	b.printOverview(rows)

	if mode == Containerized {
		generator := &artifact.Generator{
			TemplatesDir: b.Config.TemplatesPath(),
			Workspace:    b.Config.Workspace,
			Logger:       b.Logger,
		}
		if err := generator.Generate(bctx.Definitions(), bctx.Ports()); err != nil {
			return err
		}
	}

	return nil
}

// processNode runs the per-node pipeline: source tree, configuration
// document, secret merge, and (Local mode) runtime provisioning.
func (b *Bootstrapper) processNode(ctx context.Context, bctx *Context, def topology.Definition, store map[string]string) (overviewRow, error) {
	b.migrateLegacyDir(def)

	nodeDir, err := b.Resolver.Ensure(ctx, b.Config.NodeDir(def.Repo), def.Repo, b.Config.Branch)
	if err != nil {
		return overviewRow{}, err
	}

	configPath, err := WriteDocument(bctx, def, nodeDir)
	if err != nil {
		return overviewRow{}, err
	}
	b.Logger.Info("wrote configuration document", "node", def.ID, "path", configPath)

	if len(def.Secrets) > 0 {
		envPath := filepath.Join(nodeDir, ".env")
		changed, err := envfile.Merge(envPath, def.SecretKeys(), store)
		if err != nil {
			return overviewRow{}, err
		}
		if changed {
			b.Logger.Info("merged secrets into node env file", "node", def.ID, "path", envPath)
		}
	}

	if bctx.Mode() == Local {
		if err := b.Provisioner.Provision(ctx, nodeDir); err != nil {
			return overviewRow{}, err
		}
	}

	doc := Synthesize(bctx, def)
	return overviewRow{
		repo:         def.Repo,
		name:         doc.KoiNet.NodeName,
		port:         bctx.Port(def.ID),
		nodeType:     doc.KoiNet.NodeProfile.NodeType,
		cachePath:    doc.KoiNet.CacheDirectoryPath,
		configPath:   configPath,
		firstContact: doc.KoiNet.FirstContact,
	}, nil
}

// migrateLegacyDir renames a retired repository directory to its
// current name so the resolver refreshes it instead of cloning a
// duplicate next to it.
func (b *Bootstrapper) migrateLegacyDir(def topology.Definition) {
	for legacy, current := range topology.LegacyRepoNames {
		if current != def.Repo {
			continue
		}
		legacyDir := b.Config.NodeDir(legacy)
		currentDir := b.Config.NodeDir(current)
		if _, err := os.Stat(currentDir); err == nil {
			continue
		}
		if _, err := os.Stat(legacyDir); err != nil {
			continue
		}
		if err := os.Rename(legacyDir, currentDir); err != nil {
			b.Logger.Warn("could not migrate legacy repository directory",
				"from", legacyDir, "to", currentDir, "error", err)
			continue
		}
		b.Logger.Info("migrated legacy repository directory", "from", legacyDir, "to", currentDir)
	}
}

type overviewRow struct {
	repo         string
	name         string
	port         int
	nodeType     string
	cachePath    string
	configPath   string
	firstContact string
}

func (b *Bootstrapper) printOverview(rows []overviewRow) {
	out := b.Output
	if out == nil {
		out = os.Stdout
	}

	tw := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "REPO\tNODE\tPORT\tTYPE\tCACHE\tCONFIG\tFIRST CONTACT")
	for _, row := range rows {
		firstContact := row.firstContact
		if firstContact == "" {
			firstContact = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			row.repo, row.name, row.port, row.nodeType, row.cachePath, row.configPath, firstContact)
	}
	tw.Flush()
}
