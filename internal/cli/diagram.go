package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wsgraph/pkg/pipeline"
)

func (c *CLI) diagramCommand() *cobra.Command {
	flags := &analysisFlags{}
	cmd := &cobra.Command{
		Use:   "diagram [dir]",
		Short: "Print the Mermaid diagram of the workspace to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.analyzeOnly(cmd, dirArg(args), flags)
			if err != nil {
				return err
			}
			fmt.Print(report.Diagram)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// analyzeOnly runs an analysis without rendering, so no cache is needed.
func (c *CLI) analyzeOnly(cmd *cobra.Command, dir string, flags *analysisFlags) (*pipeline.Report, error) {
	cfg, err := c.loadConfig(dir)
	if err != nil {
		return nil, err
	}
	flags.apply(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	return runner.Analyze(cmd.Context(), c.pipelineOptions(dir, cfg))
}
