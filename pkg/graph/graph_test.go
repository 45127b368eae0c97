package graph

import (
	"slices"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		manifests []Manifest
		wantNodes int
		wantEdges int
		check     func(t *testing.T, g *Graph)
	}{
		{
			name:      "Empty",
			manifests: nil,
		},
		{
			name: "KeepsExternalTargets",
			manifests: []Manifest{
				{Name: "app", Dependencies: []string{"core", "serde"}},
				{Name: "core"},
			},
			wantNodes: 2,
			wantEdges: 2,
			check: func(t *testing.T, g *Graph) {
				if got := g.Dependencies("app"); !slices.Equal(got, []string{"core", "serde"}) {
					t.Errorf("Dependencies(app) = %v, want [core serde]", got)
				}
				if got := g.Dependencies("core"); got == nil || len(got) != 0 {
					t.Errorf("Dependencies(core) = %#v, want empty non-nil list", got)
				}
			},
		},
		{
			name: "LaterManifestWins",
			manifests: []Manifest{
				{Name: "a", Dependencies: []string{"x"}},
				{Name: "a", Dependencies: []string{"y", "z"}},
			},
			wantNodes: 1,
			wantEdges: 2,
			check: func(t *testing.T, g *Graph) {
				if got := g.Dependencies("a"); !slices.Equal(got, []string{"y", "z"}) {
					t.Errorf("Dependencies(a) = %v, want [y z]", got)
				}
			},
		},
		{
			name: "SkipsEmptyName",
			manifests: []Manifest{
				{Name: "", Dependencies: []string{"x"}},
				{Name: "b"},
			},
			wantNodes: 1,
		},
		{
			name: "KeepsDuplicateDependencies",
			manifests: []Manifest{
				{Name: "a", Dependencies: []string{"b", "b"}},
				{Name: "b"},
			},
			wantNodes: 2,
			wantEdges: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.manifests)
			if got := g.NodeCount(); got != tt.wantNodes {
				t.Errorf("NodeCount() = %d, want %d", got, tt.wantNodes)
			}
			if got := g.EdgeCount(); got != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", got, tt.wantEdges)
			}
			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestBuildCopiesInput(t *testing.T) {
	deps := []string{"b"}
	g := Build([]Manifest{{Name: "a", Dependencies: deps}})
	deps[0] = "mutated"

	if got := g.Dependencies("a"); got[0] != "b" {
		t.Errorf("Dependencies(a)[0] = %q, want b", got[0])
	}

	got := g.Dependencies("a")
	got[0] = "mutated"
	if g.Dependencies("a")[0] != "b" {
		t.Error("Dependencies returned a shared slice")
	}
}

func TestNodesSorted(t *testing.T) {
	g := FromMap(map[string][]string{"zeta": nil, "alpha": nil, "mid": nil})
	want := []string{"alpha", "mid", "zeta"}
	if got := g.Nodes(); !slices.Equal(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}
}

func TestEdgesOrder(t *testing.T) {
	g := FromMap(map[string][]string{
		"b": {"z", "a"},
		"a": {"c"},
	})
	want := []Edge{{"a", "c"}, {"b", "z"}, {"b", "a"}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestReferenced(t *testing.T) {
	g := FromMap(map[string][]string{
		"a": {"b", "ext"},
		"b": nil,
		"c": nil,
	})
	ref := g.Referenced()
	if !ref["b"] || !ref["ext"] {
		t.Errorf("Referenced() = %v, want b and ext", ref)
	}
	if ref["a"] || ref["c"] {
		t.Errorf("Referenced() = %v, want no a or c", ref)
	}
}

func TestFilterExternal(t *testing.T) {
	g := FromMap(map[string][]string{
		"app":  {"serde", "core", "tokio", "util"},
		"core": {"util", "log"},
		"util": {},
	})

	filtered := g.FilterExternal()

	if got := filtered.Nodes(); !slices.Equal(got, g.Nodes()) {
		t.Errorf("FilterExternal() keys = %v, want %v", got, g.Nodes())
	}
	if got := filtered.Dependencies("app"); !slices.Equal(got, []string{"core", "util"}) {
		t.Errorf("Dependencies(app) = %v, want [core util]", got)
	}
	if got := filtered.Dependencies("core"); !slices.Equal(got, []string{"util"}) {
		t.Errorf("Dependencies(core) = %v, want [util]", got)
	}

	for _, e := range filtered.Edges() {
		if !filtered.Has(e.To) {
			t.Errorf("edge %s -> %s targets a non-key", e.From, e.To)
		}
		if !slices.Contains(g.Dependencies(e.From), e.To) {
			t.Errorf("edge %s -> %s not in original graph", e.From, e.To)
		}
	}

	if !filtered.FilterExternal().Equal(filtered) {
		t.Error("FilterExternal() is not idempotent")
	}

	// The input graph is untouched.
	if got := g.Dependencies("app"); len(got) != 4 {
		t.Errorf("original Dependencies(app) = %v, want 4 entries", got)
	}
}

func TestFilterExternalEmpty(t *testing.T) {
	filtered := New().FilterExternal()
	if filtered.NodeCount() != 0 || filtered.EdgeCount() != 0 {
		t.Errorf("FilterExternal(empty) = %d nodes %d edges, want 0 0", filtered.NodeCount(), filtered.EdgeCount())
	}
}

func TestEqual(t *testing.T) {
	a := FromMap(map[string][]string{"a": {"b"}, "b": nil})
	b := FromMap(map[string][]string{"a": {"b"}, "b": {}})
	c := FromMap(map[string][]string{"a": {"b", "b"}, "b": nil})

	if !a.Equal(b) {
		t.Error("a.Equal(b) = false, want true")
	}
	if a.Equal(c) {
		t.Error("a.Equal(c) = true, want false")
	}
	if a.Equal(nil) {
		t.Error("a.Equal(nil) = true, want false")
	}
}

func TestEdgeSet(t *testing.T) {
	s := NewEdgeSet(Edge{"b", "a"})
	s.Add("a", "b")
	s.Add("a", "b")

	if len(s) != 2 {
		t.Errorf("len = %d, want 2", len(s))
	}
	if !s.Contains("a", "b") || s.Contains("b", "c") {
		t.Error("Contains() returned wrong membership")
	}

	want := []Edge{{"a", "b"}, {"b", "a"}}
	if got := s.Sorted(); !slices.Equal(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}

	var empty EdgeSet
	if empty.Contains("a", "b") {
		t.Error("nil EdgeSet reports membership")
	}
}
