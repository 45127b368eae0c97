// Package mermaid renders workspace dependency graphs as Mermaid flowchart
// text.
//
// # Output
//
// The text starts with a "graph TD" header, followed by one line per edge
// and one line per component that is neither a source nor a target of any
// edge. Edges on a dependency cycle carry a class marker, and the class is
// defined on the last line:
//
//	graph TD
//	    api --> core:::red
//	    cli --> api
//	    core --> api:::red
//	    docs
//	classDef red stroke:#ff0000,stroke-width:2px;
//
// Components are emitted in lexicographic order and each component's edges
// in declaration order, so identical input always yields identical bytes.
//
// # Styles
//
// The cycle class is a [Style]. [ParseStyle] accepts "red" (default),
// "orange" and "bold".
package mermaid
