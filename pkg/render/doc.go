// Package render groups the output backends of wsgraph.
//
// # Subpackages
//
//   - [mermaid]: the Mermaid flowchart text, the primary output
//   - [mmdc]: runs the external Mermaid CLI to turn that text into SVG/PNG
//   - [nodelink]: Graphviz DOT source and in-process SVG/PNG rendering
//
// Mermaid text is deterministic: the same graph, cycle set and style always
// produce the same bytes, which makes the output suitable for committing
// next to the code and for use as a cache key.
package render
