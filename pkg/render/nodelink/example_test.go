package nodelink_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/wsgraph/pkg/graph"
	"github.com/matzehuels/wsgraph/pkg/graph/analysis"
	"github.com/matzehuels/wsgraph/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := graph.FromMap(map[string][]string{
		"app": {"db"},
		"db":  {"app"},
	})

	fmt.Print(nodelink.ToDOT(g, analysis.DetectCycles(g), nodelink.Options{}))
	// Output:
	// digraph G {
	//   rankdir=TB;
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontsize=24, margin="0.2,0.1"];
	//   ranksep=0.5;
	//   nodesep=0.3;
	//
	//   "app" [label="app"];
	//   "db" [label="db"];
	//
	//   "app" -> "db" [color="#ff0000", penwidth=2];
	//   "db" -> "app" [color="#ff0000", penwidth=2];
	// }
}

func ExampleRenderSVG() {
	g := graph.FromMap(map[string][]string{
		"web": {"api"},
		"api": {"db"},
		"db":  nil,
	})

	svg, err := nodelink.RenderSVG(context.Background(), nodelink.ToDOT(g, nil, nodelink.Options{}))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println(len(svg) > 0)
	// Output: true
}
