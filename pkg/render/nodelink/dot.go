package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wsgraph/pkg/graph"
	"github.com/matzehuels/wsgraph/pkg/graph/analysis"
)

// DefaultCycleColor is the edge color of cycle edges.
const DefaultCycleColor = "#ff0000"

// Options configures node-link diagram generation.
type Options struct {
	// Metrics adds coupling numbers to node labels when non-nil.
	Metrics analysis.Metrics
	// CycleColor overrides DefaultCycleColor.
	CycleColor string
}

// ToDOT converts g to Graphviz DOT source. Edges in cycles are drawn bold
// in the cycle color.
func ToDOT(g *graph.Graph, cycles graph.EdgeSet, opts Options) string {
	color := opts.CycleColor
	if color == "" {
		color = DefaultCycleColor
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, name := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", name, fmtLabel(name, opts.Metrics))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if cycles.Contains(e.From, e.To) {
			fmt.Fprintf(&buf, "  %q -> %q [color=%q, penwidth=2];\n", e.From, e.To, color)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(name string, metrics analysis.Metrics) string {
	c, ok := metrics[name]
	if !ok {
		return name
	}
	parts := []string{
		fmt.Sprintf("in: %d  out: %d", c.FanIn, c.FanOut),
		fmt.Sprintf("I: %.2f", c.Instability),
	}
	return name + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag to a zero-origin viewBox with
// explicit width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
