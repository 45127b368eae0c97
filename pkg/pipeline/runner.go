package pipeline

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/wsgraph/pkg/cache"
	"github.com/matzehuels/wsgraph/pkg/graph"
	"github.com/matzehuels/wsgraph/pkg/graph/analysis"
	"github.com/matzehuels/wsgraph/pkg/membership"
	"github.com/matzehuels/wsgraph/pkg/observability"
	"github.com/matzehuels/wsgraph/pkg/render/mermaid"
	"github.com/matzehuels/wsgraph/pkg/render/mmdc"
	"github.com/matzehuels/wsgraph/pkg/workspace"
)

// Runner executes analyses and renders their artifacts.
//
// The Runner holds no per-run state. Multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Renderer *mmdc.Renderer
	TTL      time.Duration // Lifetime of cached artifacts
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Renderer: mmdc.New(""),
		TTL:      cache.DefaultTTL,
	}
}

// Analyze runs one analysis of opts.Dir.
//
// Only root manifest problems and invalid options are errors. Component
// manifests that cannot be read or parsed are skipped and listed in the
// report.
func (r *Runner) Analyze(ctx context.Context, opts Options) (report *Report, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	style, _ := mermaid.ParseStyle(opts.Style)

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, opts.Dir)
	defer func() {
		var stats observability.AnalyzeStats
		if report != nil {
			c := report.Counts()
			stats = observability.AnalyzeStats{
				Packages:   c.Packages,
				Components: c.Components,
				Edges:      c.InternalEdges,
				Cycles:     c.CycleEdges,
			}
		}
		hooks.OnAnalyzeComplete(ctx, opts.Dir, stats, time.Since(start), err)
	}()

	wsOpts := opts.workspaceOptions()
	root, err := workspace.LoadRoot(opts.Dir, wsOpts)
	if err != nil {
		return nil, err
	}

	found, err := workspace.Discover(ctx, root.Dir, wsOpts)
	if err != nil {
		return nil, fmt.Errorf("discover components: %w", err)
	}
	components := withRootPackage(found.Components, root)
	opts.Logger.Debug("discovered components",
		"packages", found.PackageCount,
		"parsed", len(components),
		"skipped", len(found.Skipped))

	set, err := membership.Resolve(root.Dir, root.Workspace)
	if err != nil {
		return nil, err
	}

	all := make([]graph.Manifest, 0, len(components))
	var local []graph.Manifest
	for _, c := range components {
		m := graph.Manifest{Name: c.Name, Dependencies: c.Dependencies}
		all = append(all, m)
		// The root package is part of its own workspace without being listed.
		if c.Dir == root.Dir || set.Contains(c.Dir) {
			local = append(local, m)
		}
	}

	full := graph.Build(all)
	filtered := graph.Build(local).FilterExternal()
	cycles := analysis.DetectCycles(filtered)

	report = &Report{
		ID:           uuid.NewString(),
		Dir:          root.Dir,
		Style:        style.Class,
		PackageCount: found.PackageCount,
		Members:      localMembers(set),
		Skipped:      found.Skipped,
		Graph:        full,
		Filtered:     filtered,
		Cycles:       cycles,
		Metrics:      analysis.ComputeCoupling(filtered),
		Diagram:      mermaid.Emit(filtered, cycles, style),
		Duration:     time.Since(start),
	}
	opts.Logger.Debug("analyzed workspace",
		"components", filtered.NodeCount(),
		"edges", filtered.EdgeCount(),
		"cycle_edges", len(cycles))
	return report, nil
}

// withRootPackage adds the root [package] unless discovery already found it.
func withRootPackage(components []workspace.Manifest, root *workspace.Root) []workspace.Manifest {
	if root.Package == nil {
		return components
	}
	if slices.ContainsFunc(components, func(m workspace.Manifest) bool { return m.Dir == root.Dir }) {
		return components
	}
	return append([]workspace.Manifest{*root.Package}, components...)
}

// localMembers returns the resolved members that are not excluded.
func localMembers(set *membership.Set) []string {
	var out []string
	for _, m := range set.Members() {
		if set.Contains(m) {
			out = append(out, m)
		}
	}
	return out
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
