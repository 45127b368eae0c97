package pipeline

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/wsgraph/pkg/cache"
	"github.com/matzehuels/wsgraph/pkg/observability"
	"github.com/matzehuels/wsgraph/pkg/render/nodelink"
)

// maxParallelRenders bounds concurrent renderer processes.
const maxParallelRenders = 4

// Render produces one artifact per format. Image formats are served from
// the cache when the same source was rendered before.
//
// The Mermaid renderer is checked once, and only if an mmdc format misses
// the cache; a missing renderer fails with RENDERER_UNAVAILABLE.
func (r *Runner) Render(ctx context.Context, report *Report, formats []string) (artifacts map[string][]byte, err error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	defer func() { hooks.OnRenderComplete(ctx, formats, time.Since(start), err) }()

	checkRenderer := sync.OnceValue(func() error {
		version, err := r.Renderer.Check(ctx)
		if err == nil {
			r.Logger.Debug("mermaid renderer", "binary", r.Renderer.Binary(), "version", version)
		}
		return err
	})

	var dot string
	if slices.ContainsFunc(formats, func(f string) bool { return strings.HasPrefix(f, FormatDOT) }) {
		dot = nodelink.ToDOT(report.Filtered, report.Cycles, nodelink.Options{Metrics: report.Metrics})
	}

	results := make([][]byte, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRenders)
	for i, format := range formats {
		g.Go(func() error {
			data, err := r.renderFormat(gctx, report, dot, format, checkRenderer)
			if err != nil {
				return err
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	artifacts = make(map[string][]byte, len(formats))
	for i, format := range formats {
		artifacts[format] = results[i]
	}
	return artifacts, nil
}

func (r *Runner) renderFormat(ctx context.Context, report *Report, dot, format string, checkRenderer func() error) ([]byte, error) {
	switch format {
	case FormatMMD:
		return []byte(report.Diagram), nil
	case FormatDOT:
		return []byte(dot), nil
	case FormatJSON:
		return json.MarshalIndent(report, "", "  ")
	case FormatSVG, FormatPNG:
		return r.cached(ctx, report.Diagram, report.Style, format, func() ([]byte, error) {
			if err := checkRenderer(); err != nil {
				return nil, err
			}
			return r.Renderer.Render(ctx, report.Diagram, format)
		})
	case FormatDOTSVG:
		return r.cached(ctx, dot, report.Style, format, func() ([]byte, error) {
			return nodelink.RenderSVG(ctx, dot)
		})
	default: // FormatDOTPNG
		return r.cached(ctx, dot, report.Style, format, func() ([]byte, error) {
			return nodelink.RenderPNG(ctx, dot)
		})
	}
}

// cached returns the artifact for source from the cache or renders and
// stores it. Cache failures are logged and never fail the render.
func (r *Runner) cached(ctx context.Context, source, style, format string, render func() ([]byte, error)) ([]byte, error) {
	opts := cache.ArtifactKeyOpts{Format: format, Style: style}
	if NeedsRenderer(format) {
		opts.Renderer = r.Renderer.Binary()
	}
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(source)), opts)
	hooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "format", format, "err", err)
	}
	if hit {
		hooks.OnCacheHit(ctx, format)
		return data, nil
	}
	hooks.OnCacheMiss(ctx, format)

	data, err = render()
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
	} else {
		hooks.OnCacheSet(ctx, format, len(data))
	}
	return data, nil
}
