// Package cli implements the wsgraph command-line interface.
//
// The commands analyze a Cargo workspace: they resolve which crates belong
// to it, build the dependency graph between them, flag dependency cycles,
// compute coupling metrics and write a Mermaid diagram. The CLI is built
// using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - analyze: full run, writes the diagram in the configured format
//   - metrics: coupling table only
//   - diagram: Mermaid text to stdout
//   - tui: interactive metrics view
//   - serve: HTTP server exposing the analysis
//   - cache: manage the rendered-artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wsgraph/internal/config"
	"github.com/matzehuels/wsgraph/pkg/cache"
	"github.com/matzehuels/wsgraph/pkg/pipeline"
	"github.com/matzehuels/wsgraph/pkg/render/mmdc"
)

// appName is the application name used for files and display.
const appName = "wsgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string // --config
	verbose    bool   // --verbose
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration for the workspace in dir. The log
// level from the file applies unless --verbose was given.
func (c *CLI) loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.Load(dir, c.configPath)
	if err != nil {
		return nil, err
	}
	if !c.verbose {
		if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
			c.Logger.SetLevel(level)
		}
	}
	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "file", cfg.Source)
	}
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, cfg.Cache.Prefix), c.Logger)
	r.Renderer = mmdc.New(cfg.Renderer.Binary)
	r.TTL = cfg.Cache.TTL
	return r, nil
}

// newCache picks the cache backend: Redis when a URL is configured, the
// file cache otherwise. A file cache that cannot be created degrades to no
// caching; an unreachable Redis server is an error.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache || !cfg.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache")
		return rc, nil
	}
	fc, err := cache.NewFileCache(cfg.Cache.Dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", cfg.Cache.Dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// pipelineOptions maps configuration onto pipeline options.
func (c *CLI) pipelineOptions(dir string, cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		Dir:              dir,
		Style:            cfg.Diagram.Style,
		IncludeDev:       cfg.Analysis.IncludeDev,
		IncludeBuild:     cfg.Analysis.IncludeBuild,
		RequireWorkspace: cfg.Analysis.RequireWorkspace,
		Logger:           c.Logger,
	}
}

// dirArg returns the workspace directory argument, "." if none.
func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
