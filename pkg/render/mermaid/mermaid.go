package mermaid

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/wsgraph/pkg/graph"
)

const (
	header = "graph TD"
	indent = "    "
)

// Emit returns the Mermaid text for g with cycles marked in style.
func Emit(g *graph.Graph, cycles graph.EdgeSet, style Style) string {
	var b strings.Builder
	_ = Write(&b, g, cycles, style)
	return b.String()
}

// Write writes the Mermaid text for g to w.
func Write(w io.Writer, g *graph.Graph, cycles graph.EdgeSet, style Style) error {
	bw := bufio.NewWriter(w)
	referenced := g.Referenced()

	bw.WriteString(header + "\n")
	for _, name := range g.Nodes() {
		deps := g.Dependencies(name)
		if len(deps) == 0 {
			if !referenced[name] {
				bw.WriteString(indent + name + "\n")
			}
			continue
		}
		for _, dep := range deps {
			bw.WriteString(indent + name + " --> " + dep)
			if cycles.Contains(name, dep) {
				bw.WriteString(style.Marker())
			}
			bw.WriteString("\n")
		}
	}
	bw.WriteString(style.Definition() + "\n")
	return bw.Flush()
}
