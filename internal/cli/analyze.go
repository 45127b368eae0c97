package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wsgraph/internal/config"
	"github.com/matzehuels/wsgraph/pkg/errors"
	"github.com/matzehuels/wsgraph/pkg/pipeline"
	"github.com/matzehuels/wsgraph/pkg/render/mmdc"
)

func (c *CLI) analyzeCommand() *cobra.Command {
	flags := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze [dir]",
		Short: "Analyze a workspace and write its dependency diagram",
		Long: `Analyze reads the workspace rooted at dir (default: current directory),
prints a summary and the coupling metrics, and writes the Mermaid diagram.

Formats mmd, dot and json are written directly. svg and png are rendered
by the Mermaid CLI (mmdc), dot-svg and dot-png by the built-in Graphviz
renderer.`,
		Example: `  wsgraph analyze
  wsgraph analyze ../my-workspace --format svg -o docs/deps.svg
  wsgraph analyze --no-file --metrics=false > deps.mmd`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd, dirArg(args), flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runAnalyze(cmd *cobra.Command, dir string, flags *analyzeFlags) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig(dir)
	if err != nil {
		return err
	}
	flags.apply(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	report, err := runner.Analyze(ctx, c.pipelineOptions(dir, cfg))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d components", report.Filtered.NodeCount()))

	if flags.noFile {
		fmt.Print(report.Diagram)
	} else {
		printSummary(report)
		if err := c.writeArtifact(ctx, runner, report, cfg); err != nil {
			return err
		}
	}

	if flags.metrics {
		printNewline()
		fmt.Println(renderMetricsTable(report.Metrics.Rows()))
	}
	return nil
}

// writeArtifact renders the configured format and writes it to disk.
func (c *CLI) writeArtifact(ctx context.Context, runner *pipeline.Runner, report *pipeline.Report, cfg *config.Config) error {
	format := cfg.Diagram.Format
	path := outputPath(cfg.Diagram.Output, format)
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}

	var artifacts map[string][]byte
	var err error
	if pipeline.IsImage(format) {
		spin := newSpinner(ctx, "Rendering "+format+"...")
		spin.Start()
		artifacts, err = runner.Render(ctx, report, []string{format})
		spin.Stop()
	} else {
		artifacts, err = runner.Render(ctx, report, []string{format})
	}
	if err != nil {
		if errors.Is(err, errors.ErrCodeRendererUnavailable) {
			printError("%s", errors.UserMessage(err))
			printDetail("Install it with: %s", mmdc.InstallHint)
			printDetail("Or write Mermaid text instead: --format mmd")
		}
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Wrote %s diagram", format)
	printFile(path)
	return nil
}

// outputPath returns output, or wsgraph.<ext> for format when empty.
func outputPath(output, format string) string {
	if output != "" {
		return output
	}
	return appName + pipeline.Extension(format)
}
