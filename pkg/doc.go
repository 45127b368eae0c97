// Package pkg holds the wsgraph libraries.
//
// # Overview
//
// wsgraph maps the internal dependency structure of a Cargo workspace. The
// pkg directory is organized by stage:
//
//  1. [workspace] - manifest discovery and TOML parsing
//  2. [membership] - which discovered crates belong to the workspace
//  3. [graph] - the dependency graph, external-reference filter and JSON form
//  4. [graph/analysis] - cycle detection and coupling metrics
//  5. [render] - Mermaid text, Graphviz and the external Mermaid CLI
//  6. [pipeline] - orchestration of one run
//
// Supporting packages: [cache] (rendered-artifact cache), [observability]
// (hooks), [errors] (coded errors) and [buildinfo].
//
// # Architecture
//
//	Cargo.toml files
//	      ↓
//	[workspace] (root manifest + component manifests)
//	      ↓
//	[membership] (resolve members/exclude globs)
//	      ↓
//	[graph] (build, drop external references)
//	      ↓
//	[graph/analysis] (cycles, fan-in/fan-out/instability)
//	      ↓
//	[render/mermaid] → diagram text → [render/mmdc] SVG/PNG
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	report, err := runner.Analyze(ctx, pipeline.Options{Dir: "."})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(report.Diagram)
package pkg
