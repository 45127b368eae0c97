package analysis

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/wsgraph/pkg/graph"
)

func assertCycles(t *testing.T, got graph.EdgeSet, want ...graph.Edge) {
	t.Helper()
	wantSorted := graph.NewEdgeSet(want...).Sorted()
	if !slices.Equal(got.Sorted(), wantSorted) {
		t.Errorf("DetectCycles() = %v, want %v", got.Sorted(), wantSorted)
	}
}

func TestDetectCycles_NoCycles(t *testing.T) {
	g := graph.FromMap(map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": nil,
	})

	cycles := DetectCycles(g)

	if len(cycles) != 0 {
		t.Errorf("DetectCycles() found %d edges, want 0", len(cycles))
	}
}

func TestDetectCycles_Empty(t *testing.T) {
	cycles := DetectCycles(graph.New())
	if cycles == nil || len(cycles) != 0 {
		t.Errorf("DetectCycles(empty) = %#v, want empty set", cycles)
	}
}

func TestDetectCycles_TriangleCycle(t *testing.T) {
	g := graph.FromMap(map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"A"},
	})

	assertCycles(t, DetectCycles(g),
		graph.Edge{From: "A", To: "B"},
		graph.Edge{From: "B", To: "C"},
		graph.Edge{From: "C", To: "A"},
	)
}

func TestDetectCycles_SelfLoop(t *testing.T) {
	g := graph.FromMap(map[string][]string{
		"A": {"A"},
		"B": {"C"},
		"C": nil,
	})

	assertCycles(t, DetectCycles(g), graph.Edge{From: "A", To: "A"})
}

func TestDetectCycles_Disconnected(t *testing.T) {
	g := graph.FromMap(map[string][]string{
		"A": {"B"},
		"B": {"A"},
		"C": {"D"},
		"D": nil,
	})

	cycles := DetectCycles(g)

	assertCycles(t, cycles,
		graph.Edge{From: "A", To: "B"},
		graph.Edge{From: "B", To: "A"},
	)
	if cycles.Contains("C", "D") {
		t.Error("acyclic edge C -> D flagged")
	}
}

func TestDetectCycles_DisjointCycles(t *testing.T) {
	g := graph.FromMap(map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"A"},
		"D": {"E"},
		"E": {"F"},
		"F": {"D"},
	})

	assertCycles(t, DetectCycles(g),
		graph.Edge{From: "A", To: "B"},
		graph.Edge{From: "B", To: "C"},
		graph.Edge{From: "C", To: "A"},
		graph.Edge{From: "D", To: "E"},
		graph.Edge{From: "E", To: "F"},
		graph.Edge{From: "F", To: "D"},
	)
}

// A walk stops at its first cycle, so A -> C is not explored from A. The
// later walk from C closes C -> A through the A, B entries still on the path.
func TestDetectCycles_ShortCircuitsSiblings(t *testing.T) {
	g := graph.FromMap(map[string][]string{
		"A": {"B", "C"},
		"B": {"A"},
		"C": {"A"},
	})

	cycles := DetectCycles(g)

	assertCycles(t, cycles,
		graph.Edge{From: "A", To: "B"},
		graph.Edge{From: "B", To: "A"},
		graph.Edge{From: "C", To: "A"},
	)
	if cycles.Contains("A", "C") {
		t.Error("A -> C flagged, want it skipped after the first cycle")
	}
}

func TestDetectCycles_MixedCycles(t *testing.T) {
	g := graph.FromMap(map[string][]string{
		"A": {"B"},
		"B": {"C", "D"},
		"C": {"A"},
		"D": {"E"},
		"E": {"B"},
		"F": {"G"},
		"G": nil,
	})

	cycles := DetectCycles(g)

	assertCycles(t, cycles,
		graph.Edge{From: "A", To: "B"},
		graph.Edge{From: "B", To: "C"},
		graph.Edge{From: "C", To: "A"},
		graph.Edge{From: "D", To: "E"},
		graph.Edge{From: "E", To: "B"},
	)
	// C and D are adjacent on the shared path but C -> D is not an edge.
	if cycles.Contains("C", "D") {
		t.Error("C -> D flagged, but it is not an edge of the graph")
	}
}

func TestDetectCycles_EdgeIntoCycle(t *testing.T) {
	g := graph.FromMap(map[string][]string{
		"api":   {"core"},
		"cli":   {"api"},
		"core":  {"store"},
		"store": {"api"},
	})

	cycles := DetectCycles(g)

	assertCycles(t, cycles,
		graph.Edge{From: "api", To: "core"},
		graph.Edge{From: "core", To: "store"},
		graph.Edge{From: "store", To: "api"},
	)
	// api is still on the path when cli's walk reaches it, but cli -> api
	// lies on no cycle.
	if cycles.Contains("cli", "api") {
		t.Error("cli -> api flagged, but cli is not on a cycle")
	}
}

func TestDetectCycles_IgnoresExternalTargets(t *testing.T) {
	g := graph.FromMap(map[string][]string{
		"A": {"serde", "A"},
		"B": {"tokio"},
	})

	assertCycles(t, DetectCycles(g), graph.Edge{From: "A", To: "A"})
}

func TestDetectCycles_SubsetOfEdges(t *testing.T) {
	g := graph.FromMap(map[string][]string{
		"a": {"b", "c", "ext"},
		"b": {"c", "a"},
		"c": {"d"},
		"d": {"b", "e"},
		"e": {"e"},
		"f": {"a"},
	})

	for e := range DetectCycles(g) {
		if !slices.Contains(g.Dependencies(e.From), e.To) {
			t.Errorf("flagged edge %s -> %s is not in the graph", e.From, e.To)
		}
	}
}

func TestComponents(t *testing.T) {
	// 0 <-> 1, 1 -> 2, 2 -> 2, 3 -> 0
	comp := components([][]int{{1}, {0, 2}, {2}, {0}})

	if comp[0] != comp[1] {
		t.Errorf("0 and 1 in different components: %v", comp)
	}
	if comp[2] == comp[0] || comp[3] == comp[0] || comp[2] == comp[3] {
		t.Errorf("2 and 3 should each be alone: %v", comp)
	}
}

func TestDetectCycles_Deterministic(t *testing.T) {
	build := func() *graph.Graph {
		return graph.FromMap(map[string][]string{
			"a": {"b", "c"},
			"b": {"a"},
			"c": {"d"},
			"d": {"c", "a"},
		})
	}

	first := DetectCycles(build()).Sorted()
	for i := 0; i < 20; i++ {
		if got := DetectCycles(build()).Sorted(); !slices.Equal(got, first) {
			t.Fatalf("run %d = %v, want %v", i, got, first)
		}
	}
}

func TestDetectCycles_DeepChain(t *testing.T) {
	const n = 100000
	adj := make(map[string][]string, n)
	for i := 0; i < n; i++ {
		adj[fmt.Sprintf("n%06d", i)] = []string{fmt.Sprintf("n%06d", (i+1)%n)}
	}

	cycles := DetectCycles(graph.FromMap(adj))

	if len(cycles) != n {
		t.Errorf("DetectCycles() found %d edges, want %d", len(cycles), n)
	}
}
