package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Node is a graph key in the serialized form.
type Node struct {
	ID string `json:"id"`
}

// document is the node-link wire format.
type document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a graph to indented JSON bytes.
// Nodes are sorted by ID for deterministic output.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a graph as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
// Edges whose source is not a listed node are rejected.
func ReadGraph(r io.Reader) (*Graph, error) {
	return readGraphFrom(r)
}

// MarshalJSON implements json.Marshaler.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(toDocument(g))
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	parsed, err := fromDocument(doc)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}

// MarshalJSON encodes the set as a sorted edge list.
func (s EdgeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an edge list into the set.
func (s *EdgeSet) UnmarshalJSON(data []byte) error {
	var edges []Edge
	if err := json.Unmarshal(data, &edges); err != nil {
		return err
	}
	*s = NewEdgeSet(edges...)
	return nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromDocument(doc)
}

func toDocument(g *Graph) document {
	names := g.Nodes()
	doc := document{
		Nodes: make([]Node, len(names)),
		Edges: g.Edges(),
	}
	for i, name := range names {
		doc.Nodes[i] = Node{ID: name}
	}
	return doc
}

func fromDocument(doc document) (*Graph, error) {
	g := New()
	for _, n := range doc.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node with empty id")
		}
		if g.Has(n.ID) {
			return nil, fmt.Errorf("duplicate node %q", n.ID)
		}
		g.deps[n.ID] = []string{}
	}
	for _, e := range doc.Edges {
		if !g.Has(e.From) {
			return nil, fmt.Errorf("edge %s→%s: unknown source node", e.From, e.To)
		}
		g.deps[e.From] = append(g.deps[e.From], e.To)
	}
	return g, nil
}
