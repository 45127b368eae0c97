package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wsgraph/pkg/graph/analysis"
)

// noPackagesMessage is printed instead of an empty metrics table.
const noPackagesMessage = "No packages found in the graph."

func (c *CLI) metricsCommand() *cobra.Command {
	flags := &analysisFlags{}
	cmd := &cobra.Command{
		Use:   "metrics [dir]",
		Short: "Print coupling metrics of the workspace crates",
		Long: `Metrics prints fan-in, fan-out and instability of every workspace crate.

Fan-in counts the crates that depend on a crate, fan-out the crates it
depends on. Instability is fan-out / (fan-in + fan-out): 0 for crates
nothing else can break, 1 for crates nothing depends on.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.analyzeOnly(cmd, dirArg(args), flags)
			if err != nil {
				return err
			}
			fmt.Println(renderMetricsTable(report.Metrics.Rows()))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// renderMetricsTable formats rows as a table sorted by name.
func renderMetricsTable(rows []analysis.Row) string {
	if len(rows) == 0 {
		return noPackagesMessage
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			r.Name,
			fmt.Sprint(r.FanIn),
			fmt.Sprint(r.FanOut),
			fmt.Sprintf("%.2f", r.Instability),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Fan In", "Fan Out", "Instability").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return cellStyle.Foreground(colorWhite)
			}
			if col == 3 {
				return cellStyle.Foreground(instabilityColor(rows[row].Instability)).Align(lipgloss.Right)
			}
			return cellStyle.Align(lipgloss.Right)
		})
	return strings.TrimRight(t.Render(), "\n")
}

// instabilityColor shades stable crates green and unstable ones amber.
func instabilityColor(v float64) lipgloss.Color {
	switch {
	case v <= 0.3:
		return colorGreen
	case v >= 0.7:
		return colorYellow
	default:
		return colorGray
	}
}
