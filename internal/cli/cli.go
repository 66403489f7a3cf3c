// Package cli implements the primgeom command-line interface.
//
// The commands inspect technologies and generate primitive geometry:
//   - tech: List the primitives and arcs of a technology
//   - node: Build the polygons of a node instance
//   - arc: Build the polygons of an arc instance
//   - cuts: Show how a multi-cut region is populated
//   - batch: Run a file of requests in parallel
//   - cache: Manage the shape cache
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. Lengths on the command line are in lambda
// and converted with the selected technology's scale.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/primgeom/pkg/buildinfo"
	"github.com/matzehuels/primgeom/pkg/cache"
	"github.com/matzehuels/primgeom/pkg/pipeline"
	"github.com/matzehuels/primgeom/pkg/shape"
	"github.com/matzehuels/primgeom/pkg/tech"
	"github.com/matzehuels/primgeom/pkg/tech/sample"
	"github.com/matzehuels/primgeom/pkg/techfile"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "primgeom"

	// redisNamespace prefixes shape keys in a shared Redis instance.
	redisNamespace = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Global flags.
	techFlag  string
	noCache   bool
	redisAddr string
	strict    bool
	hide      []string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "primgeom builds polygons for parametric IC layout primitives",
		Long:         `primgeom turns the primitive templates of a technology (pins, contacts, transistors, arcs) into placed polygons, including multi-cut contact arrays and serpentine transistors.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.techFlag, "tech", "", "technology file (TOML) or registered technology name (default "+sample.Name+")")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the shape cache")
	pf.StringVar(&c.redisAddr, "redis-addr", "", "share the shape cache through Redis at host:port")
	pf.BoolVar(&c.strict, "strict", false, "fail on malformed polygons instead of warning")
	pf.StringSliceVar(&c.hide, "hide", nil, "layers to leave out of node and arc output")

	root.AddCommand(c.techCommand())
	root.AddCommand(c.nodeCommand())
	root.AddCommand(c.arcCommand())
	root.AddCommand(c.cutsCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Technology Selection
// =============================================================================

// catalog registers the built-in sample and, when --tech names a file, the
// technology loaded from it.
func (c *CLI) catalog() (*tech.Catalog, *tech.Technology, error) {
	cat := tech.NewCatalog()
	builtin, err := sample.Build()
	if err != nil {
		return nil, nil, err
	}
	if err := cat.Register(builtin); err != nil {
		return nil, nil, err
	}

	if c.techFlag == "" {
		return cat, builtin, nil
	}
	if _, err := os.Stat(c.techFlag); err != nil {
		t, err := cat.Lookup(c.techFlag)
		return cat, t, err
	}

	t, err := techfile.Load(c.techFlag)
	if err != nil {
		return nil, nil, err
	}
	if err := cat.Register(t); err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("loaded technology", "name", t.Name, "file", c.techFlag, "nodes", len(t.Nodes()))
	return cat, t, nil
}

// technology returns the technology selected by --tech.
func (c *CLI) technology() (*tech.Technology, error) {
	_, t, err := c.catalog()
	return t, err
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, t *tech.Technology) (*pipeline.Runner, error) {
	logger := loggerFromContext(ctx)
	store, err := c.newCache(ctx, logger)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	return pipeline.NewRunner(t, c.providers(t, logger), store, keyer, logger), nil
}

// providers builds the shape provider table for t from the global flags.
func (c *CLI) providers(t *tech.Technology, logger *log.Logger) *shape.Providers {
	b := shape.NewBuilder(t.Scale, logger)
	b.Strict = c.strict

	provs := shape.NewProviders(b)
	if len(c.hide) > 0 {
		hidden := make(map[string]bool, len(c.hide))
		for _, name := range c.hide {
			hidden[strings.TrimSpace(name)] = true
		}
		provs.Register(t.Name, shape.LayerFilter{Base: b, Hidden: hidden})
	}
	return provs
}

func (c *CLI) newCache(ctx context.Context, logger *log.Logger) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.redisAddr, Namespace: redisNamespace})
		if err == nil {
			return rc, nil
		}
		logger.Warn("redis unavailable, using local cache", "err", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/primgeom/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
