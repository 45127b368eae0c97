// Package graph provides the workspace dependency graph and its
// serialization.
//
// A [Graph] maps every component name to the ordered list of names it
// depends on. Dependency lists may name components that are not keys of the
// graph (third-party packages); [Graph.FilterExternal] drops those edges so
// that only workspace-internal relationships remain.
//
// # Building
//
//	g := graph.Build([]graph.Manifest{
//	    {Name: "app", Dependencies: []string{"core", "serde"}},
//	    {Name: "core"},
//	})
//	local := g.FilterExternal() // app -> core only
//
// When two manifests declare the same name the later one wins.
//
// # Iteration Order
//
// Keys are always visited in lexicographic order and each dependency list in
// the order it was declared. Everything derived from a graph (diagrams, JSON,
// cycle detection) is therefore deterministic.
//
// # Serialization
//
// Graphs use a node-link JSON format:
//
//	{
//	  "nodes": [{"id": "app"}, {"id": "core"}],
//	  "edges": [{"from": "app", "to": "core"}]
//	}
//
// Edge targets do not have to appear in "nodes", which keeps unfiltered
// graphs representable.
//
// # Concurrency
//
// A Graph is immutable after construction and safe for concurrent reads.
package graph
