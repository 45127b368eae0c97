package graph

import (
	"cmp"
	"slices"
)

// Edge is a directed dependency from one component to another.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// EdgeSet is an unordered set of edges.
type EdgeSet map[Edge]struct{}

// NewEdgeSet returns an EdgeSet holding edges.
func NewEdgeSet(edges ...Edge) EdgeSet {
	s := make(EdgeSet, len(edges))
	for _, e := range edges {
		s[e] = struct{}{}
	}
	return s
}

// Add inserts the edge from -> to.
func (s EdgeSet) Add(from, to string) {
	s[Edge{From: from, To: to}] = struct{}{}
}

// Contains reports whether from -> to is in the set. A nil set is empty.
func (s EdgeSet) Contains(from, to string) bool {
	_, ok := s[Edge{From: from, To: to}]
	return ok
}

// Sorted returns the edges ordered by source, then target.
func (s EdgeSet) Sorted() []Edge {
	out := make([]Edge, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})
	return out
}
