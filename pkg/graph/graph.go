package graph

import (
	"maps"
	"slices"
)

// Manifest is the dependency declaration of a single component.
type Manifest struct {
	Name         string   // Component name, becomes the graph key
	Dependencies []string // Declared dependency names, in declaration order
}

// Graph is a directed dependency graph keyed by component name.
//
// The zero value is not usable; use [New], [Build] or [FromMap].
type Graph struct {
	deps map[string][]string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{deps: make(map[string][]string)}
}

// Build creates a graph with one key per manifest. Manifests with an empty
// name are ignored and a later manifest replaces an earlier one with the same
// name. Dependency names are kept verbatim, including duplicates.
func Build(manifests []Manifest) *Graph {
	g := New()
	for _, m := range manifests {
		if m.Name == "" {
			continue
		}
		g.deps[m.Name] = cloneList(m.Dependencies)
	}
	return g
}

// FromMap creates a graph from an adjacency map. The map is copied.
func FromMap(m map[string][]string) *Graph {
	g := New()
	for name, deps := range m {
		if name == "" {
			continue
		}
		g.deps[name] = cloneList(deps)
	}
	return g
}

// Has reports whether name is a key of the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.deps[name]
	return ok
}

// Dependencies returns a copy of the dependency list of name, or nil if name
// is not a key.
func (g *Graph) Dependencies(name string) []string {
	deps, ok := g.deps[name]
	if !ok {
		return nil
	}
	return cloneList(deps)
}

// Nodes returns all keys in lexicographic order.
func (g *Graph) Nodes() []string {
	return slices.Sorted(maps.Keys(g.deps))
}

// NodeCount returns the number of keys.
func (g *Graph) NodeCount() int { return len(g.deps) }

// EdgeCount returns the total length of all dependency lists, duplicates
// and external targets included.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, deps := range g.deps {
		n += len(deps)
	}
	return n
}

// Edges returns every edge, grouped by source in lexicographic order and in
// declaration order within a source.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	for _, name := range g.Nodes() {
		for _, dep := range g.deps[name] {
			edges = append(edges, Edge{From: name, To: dep})
		}
	}
	return edges
}

// Referenced returns the set of names that appear as an edge target.
func (g *Graph) Referenced() map[string]bool {
	out := make(map[string]bool)
	for _, deps := range g.deps {
		for _, dep := range deps {
			out[dep] = true
		}
	}
	return out
}

// FilterExternal returns a new graph with the same keys where every
// dependency list only keeps entries that are themselves keys. Relative
// order is preserved. Applying it twice yields the same graph.
func (g *Graph) FilterExternal() *Graph {
	out := New()
	for name, deps := range g.deps {
		kept := make([]string, 0, len(deps))
		for _, dep := range deps {
			if g.Has(dep) {
				kept = append(kept, dep)
			}
		}
		out.deps[name] = kept
	}
	return out
}

// Map returns a copy of the adjacency map.
func (g *Graph) Map() map[string][]string {
	out := make(map[string][]string, len(g.deps))
	for name, deps := range g.deps {
		out[name] = cloneList(deps)
	}
	return out
}

// Equal reports whether both graphs have the same keys and identical
// dependency lists.
func (g *Graph) Equal(other *Graph) bool {
	if other == nil || len(g.deps) != len(other.deps) {
		return false
	}
	for name, deps := range g.deps {
		od, ok := other.deps[name]
		if !ok || !slices.Equal(deps, od) {
			return false
		}
	}
	return true
}

func cloneList(deps []string) []string {
	if len(deps) == 0 {
		return []string{}
	}
	return slices.Clone(deps)
}
