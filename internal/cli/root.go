package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wsgraph/pkg/buildinfo"
	"github.com/matzehuels/wsgraph/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
// Run without a subcommand, it analyzes the current directory.
func (c *CLI) RootCommand() *cobra.Command {
	flags := &analyzeFlags{}
	root := &cobra.Command{
		Use:   "wsgraph [dir]",
		Short: "wsgraph maps the internal dependencies of a Cargo workspace",
		Long: `wsgraph reads a Cargo workspace, builds the dependency graph between its
member crates, flags dependency cycles, computes coupling metrics and writes
a Mermaid diagram of the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		SilenceErrors: true,
		Args:         cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd, dirArg(args), flags)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: <dir>/wsgraph.toml)")
	flags.register(root)

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.metricsCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
