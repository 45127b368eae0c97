package analysis

import (
	"slices"

	"github.com/matzehuels/wsgraph/pkg/graph"
)

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

type frame struct {
	node int // index into names
	next int // next neighbor position to try
}

type cycleDetector struct {
	names  []string
	adj    [][]int
	state  []visitState
	pos    []int   // index of the node's frame on path
	path   []frame // shared across roots; short-circuited walks leave theirs behind
	comp   []int   // strongly connected component per node, computed on first record
	cycles graph.EdgeSet
}

// DetectCycles returns the set of edges found to lie on a dependency cycle.
//
// Only edges whose target is a key of g are followed. The traversal uses an
// explicit stack, so deep graphs cannot exhaust the goroutine stack.
func DetectCycles(g *graph.Graph) graph.EdgeSet {
	names := g.Nodes()
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	d := &cycleDetector{
		names:  names,
		adj:    make([][]int, len(names)),
		state:  make([]visitState, len(names)),
		pos:    make([]int, len(names)),
		cycles: graph.EdgeSet{},
	}
	for i, name := range names {
		for _, dep := range g.Dependencies(name) {
			if j, ok := index[dep]; ok {
				d.adj[i] = append(d.adj[i], j)
			}
		}
	}

	for root := range names {
		if d.state[root] == unvisited {
			d.walk(root)
		}
	}
	return d.cycles
}

// walk explores everything reachable from root and returns at the first
// cycle found. Nodes on the path at that point stay in progress and remain
// on the path, so later walks can close cycles through them.
func (d *cycleDetector) walk(root int) {
	base := len(d.path)
	d.push(root)

	for len(d.path) > base {
		top := &d.path[len(d.path)-1]
		if top.next == len(d.adj[top.node]) {
			d.state[top.node] = done
			d.path = d.path[:len(d.path)-1]
			continue
		}

		next := d.adj[top.node][top.next]
		top.next++

		switch d.state[next] {
		case unvisited:
			d.push(next)
		case inProgress:
			d.record(next)
			return
		}
	}
}

func (d *cycleDetector) push(n int) {
	d.state[n] = inProgress
	d.pos[n] = len(d.path)
	d.path = append(d.path, frame{node: n})
}

// record adds every path edge from target's position to the end of the
// path, plus the closing edge back to target. A pair is kept only if it is
// an edge of the graph that lies on a cycle; consecutive entries left by
// earlier walks need not be either.
func (d *cycleDetector) record(target int) {
	for i := d.pos[target]; i < len(d.path)-1; i++ {
		d.add(d.path[i].node, d.path[i+1].node)
	}
	d.add(d.path[len(d.path)-1].node, target)
}

func (d *cycleDetector) add(from, to int) {
	if !slices.Contains(d.adj[from], to) {
		return
	}
	if d.comp == nil {
		d.comp = components(d.adj)
	}
	if d.comp[from] == d.comp[to] {
		d.cycles.Add(d.names[from], d.names[to])
	}
}

// components labels every node with its strongly connected component
// (iterative Tarjan). An edge lies on a cycle exactly when both ends share
// a label.
func components(adj [][]int) []int {
	n := len(adj)
	order := make([]int, n) // discovery order, 0 while unvisited
	low := make([]int, n)
	onStack := make([]bool, n)
	comp := make([]int, n)
	var stack []int
	var frames []frame
	counter, label := 0, 0

	visit := func(v int) {
		counter++
		order[v], low[v] = counter, counter
		stack = append(stack, v)
		onStack[v] = true
		frames = append(frames, frame{node: v})
	}

	for root := range n {
		if order[root] != 0 {
			continue
		}
		visit(root)
		for len(frames) > 0 {
			top := &frames[len(frames)-1]
			v := top.node
			if top.next < len(adj[v]) {
				w := adj[v][top.next]
				top.next++
				if order[w] == 0 {
					visit(w)
				} else if onStack[w] {
					low[v] = min(low[v], order[w])
				}
				continue
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				p := frames[len(frames)-1].node
				low[p] = min(low[p], low[v])
			}
			if low[v] == order[v] {
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					comp[w] = label
					if w == v {
						break
					}
				}
				label++
			}
		}
	}
	return comp
}
