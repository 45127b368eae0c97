package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/wsgraph/internal/config"
	"github.com/matzehuels/wsgraph/pkg/render/mermaid"
)

// analysisFlags are shared by every command that runs an analysis.
// Flags override config file values only when given explicitly.
type analysisFlags struct {
	style            string
	dev              bool
	build            bool
	requireWorkspace bool
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.style, "style", mermaid.DefaultStyle, "cycle edge style: red, orange, bold")
	fs.BoolVar(&f.dev, "dev", false, "include [dev-dependencies]")
	fs.BoolVar(&f.build, "build", false, "include [build-dependencies]")
	fs.BoolVar(&f.requireWorkspace, "require-workspace", false, "fail if the root manifest has no [workspace] section")
}

func (f *analysisFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("style") {
		cfg.Diagram.Style = f.style
	}
	if fs.Changed("dev") {
		cfg.Analysis.IncludeDev = f.dev
	}
	if fs.Changed("build") {
		cfg.Analysis.IncludeBuild = f.build
	}
	if fs.Changed("require-workspace") {
		cfg.Analysis.RequireWorkspace = f.requireWorkspace
	}
}

// analyzeFlags add output selection to analysisFlags.
type analyzeFlags struct {
	analysisFlags
	format  string
	output  string
	noFile  bool
	metrics bool
	noCache bool
}

func (f *analyzeFlags) register(cmd *cobra.Command) {
	f.analysisFlags.register(cmd)
	fs := cmd.Flags()
	fs.StringVar(&f.format, "format", "mmd", "output format: mmd, svg, png, dot, dot-svg, dot-png, json")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: wsgraph.<ext>)")
	fs.BoolVar(&f.noFile, "no-file", false, "print the diagram to stdout instead of writing a file")
	fs.BoolVar(&f.metrics, "metrics", true, "print the coupling metrics table")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the rendered-artifact cache")
}

func (f *analyzeFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	f.analysisFlags.apply(fs, cfg)
	if fs.Changed("format") {
		cfg.Diagram.Format = f.format
	}
	if fs.Changed("output") {
		cfg.Diagram.Output = f.output
	}
}
