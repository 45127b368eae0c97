// Package analysis computes structural properties of a workspace dependency
// graph: which edges take part in dependency cycles and how strongly each
// component is coupled to the rest of the workspace.
//
// # Cycle Detection
//
// [DetectCycles] runs a depth-first search from every unvisited key in
// lexicographic order. When an edge reaches a node that is still on the
// current path, the path segment from that node plus the closing edge is
// added to the result.
//
// A walk returns as soon as it finds its first cycle, without exploring the
// remaining neighbors of the nodes on its path. Those nodes stay in progress
// and stay on the path, so a later walk that reaches one of them closes a
// cycle through them. Every weakly connected component that contains a
// cycle gets at least one reported, but a component holding several cycles
// reachable from the same root may not have all of them reported.
//
// A recorded pair is kept only when it is an edge of the graph whose ends
// share a strongly connected component, so every reported edge lies on a
// real cycle.
//
// # Coupling
//
// [ComputeCoupling] derives afferent coupling (fan-in), efferent coupling
// (fan-out) and instability for every key:
//
//	I = 0                     if fan-out == 0
//	I = 1                     if fan-in == 0 and fan-out > 0
//	I = fan-out / (fan-in + fan-out) otherwise
//
// Both counts are over distinct components, so duplicated dependency
// declarations are counted once.
package analysis
