// Package nodelink renders workspace dependency graphs as Graphviz
// node-link diagrams.
//
// # Overview
//
// This is the in-process alternative to the Mermaid text output: no
// external tool is needed because rendering goes through
// [github.com/goccy/go-graphviz]. Components appear as rounded boxes and
// cycle edges are drawn in the cycle color.
//
// # Usage
//
//	dot := nodelink.ToDOT(filtered, cycles, nodelink.Options{Metrics: metrics})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
//   - Metrics: when set, node labels include fan-in, fan-out and instability
//   - CycleColor: stroke color of cycle edges (default red)
//
// The generated DOT uses a top-to-bottom layout (rankdir=TB), matching
// Mermaid's "graph TD".
package nodelink
