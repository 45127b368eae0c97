package analysis

import (
	"maps"
	"slices"

	"github.com/matzehuels/wsgraph/pkg/graph"
)

// Coupling holds the coupling metrics of one component.
type Coupling struct {
	FanIn       int     `json:"fan_in"`      // Distinct components depending on this one
	FanOut      int     `json:"fan_out"`     // Distinct components this one depends on
	Instability float64 `json:"instability"` // FanOut / (FanIn + FanOut), in [0, 1]
}

// Metrics maps component names to their coupling.
type Metrics map[string]Coupling

// Row is a named Coupling entry, used for ordered listings.
type Row struct {
	Name string `json:"name"`
	Coupling
}

// ComputeCoupling returns coupling metrics for every key of g.
//
// g is normally the filtered graph; on an unfiltered graph external
// targets count towards fan-out but never receive an entry of their own.
// Empty dependency names are ignored.
func ComputeCoupling(g *graph.Graph) Metrics {
	dependents := make(map[string]map[string]struct{})
	out := make(Metrics, g.NodeCount())

	for _, name := range g.Nodes() {
		targets := make(map[string]struct{})
		for _, dep := range g.Dependencies(name) {
			if dep == "" {
				continue
			}
			targets[dep] = struct{}{}
			if dependents[dep] == nil {
				dependents[dep] = make(map[string]struct{})
			}
			dependents[dep][name] = struct{}{}
		}
		out[name] = Coupling{FanOut: len(targets)}
	}

	for name, c := range out {
		c.FanIn = len(dependents[name])
		c.Instability = Instability(c.FanIn, c.FanOut)
		out[name] = c
	}
	return out
}

// Instability computes fanOut / (fanIn + fanOut) with the edge cases pinned:
// zero fan-out is 0 and zero fan-in with non-zero fan-out is 1.
func Instability(fanIn, fanOut int) float64 {
	switch {
	case fanOut == 0:
		return 0
	case fanIn == 0:
		return 1
	default:
		return float64(fanOut) / float64(fanIn+fanOut)
	}
}

// Names returns the component names in lexicographic order.
func (m Metrics) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

// Rows returns the metrics ordered by component name.
func (m Metrics) Rows() []Row {
	names := m.Names()
	rows := make([]Row, len(names))
	for i, name := range names {
		rows[i] = Row{Name: name, Coupling: m[name]}
	}
	return rows
}
