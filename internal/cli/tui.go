package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wsgraph/pkg/graph/analysis"
	"github.com/matzehuels/wsgraph/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listCycleStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

func (c *CLI) tuiCommand() *cobra.Command {
	flags := &analysisFlags{}
	cmd := &cobra.Command{
		Use:   "tui [dir]",
		Short: "Browse coupling metrics interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.analyzeOnly(cmd, dirArg(args), flags)
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewMetricsModel(report), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

// =============================================================================
// MetricsModel - Scrollable metrics view
// =============================================================================

// MetricsModel is the bubbletea model for the interactive metrics view.
type MetricsModel struct {
	Rows    []analysis.Row
	Summary pipeline.Counts
	InCycle map[string]bool // Components with at least one cycle edge
	Cursor  int
	Height  int
	Offset  int
}

// NewMetricsModel creates a metrics view for report.
func NewMetricsModel(report *pipeline.Report) MetricsModel {
	inCycle := make(map[string]bool)
	for e := range report.Cycles {
		inCycle[e.From] = true
		inCycle[e.To] = true
	}
	return MetricsModel{
		Rows:    report.Metrics.Rows(),
		Summary: report.Counts(),
		InCycle: inCycle,
		Height:  15,
	}
}

func (m MetricsModel) Init() tea.Cmd {
	return nil
}

func (m MetricsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Rows); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m MetricsModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Workspace Coupling"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d packages · %d components · %d internal edges · %d cycle edges",
		m.Summary.Packages, m.Summary.Components, m.Summary.InternalEdges, m.Summary.CycleEdges)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ scroll  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(noPackagesMessage)
		b.WriteString("\n")
		return b.String()
	}

	width := len("Package")
	for _, r := range m.Rows {
		width = max(width, len(r.Name))
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %-*s  %6s  %7s  %11s", width, "Package", "Fan In", "Fan Out", "Instability")))
	b.WriteString("\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-*s  %6d  %7d  %11.2f", cursor, width, r.Name, r.FanIn, r.FanOut, r.Instability)

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case m.InCycle[r.Name]:
			b.WriteString(listCycleStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	return b.String()
}
