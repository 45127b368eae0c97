package pipeline

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/wsgraph/pkg/graph"
	"github.com/matzehuels/wsgraph/pkg/graph/analysis"
	"github.com/matzehuels/wsgraph/pkg/workspace"
)

// Report is the outcome of one analysis run.
type Report struct {
	ID           string              // Run identifier
	Dir          string              // Canonical workspace directory
	Style        string              // Cycle style used for Diagram
	PackageCount int                 // Directories with a manifest and src/
	Members      []string            // Resolved workspace member paths
	Skipped      []workspace.Skipped // Manifests that could not be used
	Graph        *graph.Graph        // All parsed components
	Filtered     *graph.Graph        // Workspace-local components, internal edges only
	Cycles       graph.EdgeSet       // Flagged cycle edges of Filtered
	Metrics      analysis.Metrics    // Coupling per Filtered component
	Diagram      string              // Mermaid text
	Duration     time.Duration
}

// Counts summarizes a report.
type Counts struct {
	Packages      int `json:"packages"`
	Members       int `json:"members"`
	Components    int `json:"components"`
	TotalEdges    int `json:"total_edges"`
	InternalEdges int `json:"internal_edges"`
	CycleEdges    int `json:"cycle_edges"`
	Skipped       int `json:"skipped"`
}

// Counts returns the summary numbers of r.
func (r *Report) Counts() Counts {
	return Counts{
		Packages:      r.PackageCount,
		Members:       len(r.Members),
		Components:    r.Filtered.NodeCount(),
		TotalEdges:    r.Graph.EdgeCount(),
		InternalEdges: r.Filtered.EdgeCount(),
		CycleEdges:    len(r.Cycles),
		Skipped:       len(r.Skipped),
	}
}

type skippedJSON struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type reportJSON struct {
	ID         string           `json:"id"`
	Dir        string           `json:"dir"`
	Style      string           `json:"style"`
	Counts     Counts           `json:"counts"`
	Members    []string         `json:"members"`
	Skipped    []skippedJSON    `json:"skipped"`
	Graph      *graph.Graph     `json:"graph"`
	Cycles     graph.EdgeSet    `json:"cycles"`
	Metrics    analysis.Metrics `json:"metrics"`
	Diagram    string           `json:"diagram"`
	DurationMS int64            `json:"duration_ms"`
}

// MarshalJSON encodes the report with the filtered graph, sorted cycle
// edges and a counts summary.
func (r *Report) MarshalJSON() ([]byte, error) {
	skipped := make([]skippedJSON, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		reason := ""
		if s.Err != nil {
			reason = s.Err.Error()
		}
		skipped = append(skipped, skippedJSON{Path: s.Path, Reason: reason})
	}
	members := r.Members
	if members == nil {
		members = []string{}
	}
	return json.Marshal(reportJSON{
		ID:         r.ID,
		Dir:        r.Dir,
		Style:      r.Style,
		Counts:     r.Counts(),
		Members:    members,
		Skipped:    skipped,
		Graph:      r.Filtered,
		Cycles:     r.Cycles,
		Metrics:    r.Metrics,
		Diagram:    r.Diagram,
		DurationMS: r.Duration.Milliseconds(),
	})
}
