package pipeline_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wsgraph/pkg/pipeline"
)

func ExampleRunner_Analyze() {
	runner := pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))

	report, err := runner.Analyze(context.Background(), pipeline.Options{Dir: "../../examples/workspace"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(report.Diagram)

	c := report.Counts()
	fmt.Printf("%d packages, %d members, %d cycle edges\n", c.Packages, c.Members, c.CycleEdges)
	// Output:
	// graph TD
	//     cli --> http
	//     events --> domain
	//     events --> http:::red
	//     http --> domain
	//     http --> storage
	//     http --> events:::red
	//     storage --> domain
	//     xtask
	// classDef red stroke:#ff0000,stroke-width:2px;
	// 7 packages, 6 members, 2 cycle edges
}

func ExampleRunner_Analyze_devDependencies() {
	runner := pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))

	report, err := runner.Analyze(context.Background(), pipeline.Options{
		Dir:        "../../examples/workspace",
		IncludeDev: true,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, row := range report.Metrics.Rows() {
		fmt.Printf("%-8s in=%d out=%d instability=%.2f\n", row.Name, row.FanIn, row.FanOut, row.Instability)
	}
	// Output:
	// cli      in=0 out=2 instability=1.00
	// domain   in=3 out=0 instability=0.00
	// events   in=1 out=2 instability=0.67
	// http     in=2 out=3 instability=0.60
	// storage  in=2 out=1 instability=0.33
	// xtask    in=0 out=0 instability=0.00
}
