package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/wsgraph/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors, cycles
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleCycle for cycle counts.
	StyleCycle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Println(keyStyle.Render(key) + " " + value)
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Report Summary
// =============================================================================

// summaryLines returns the label/value pairs of the run summary.
func summaryLines(report *pipeline.Report) [][2]string {
	c := report.Counts()
	cycles := StyleNumber.Render("0")
	if c.CycleEdges > 0 {
		cycles = StyleCycle.Render(fmt.Sprint(c.CycleEdges))
	}
	return [][2]string{
		{"Workspace", StyleValue.Render(report.Dir)},
		{"Packages", StyleNumber.Render(fmt.Sprint(c.Packages))},
		{"Members", StyleNumber.Render(fmt.Sprint(c.Members))},
		{"Components", StyleNumber.Render(fmt.Sprint(c.Components))},
		{"Edges", fmt.Sprintf("%s %s", StyleNumber.Render(fmt.Sprint(c.InternalEdges)),
			StyleDim.Render(fmt.Sprintf("internal of %d total", c.TotalEdges)))},
		{"Cycle edges", cycles},
	}
}

// printSummary prints the counts of a report and warns about skipped
// manifests.
func printSummary(report *pipeline.Report) {
	for _, kv := range summaryLines(report) {
		printKeyValue(kv[0], kv[1])
	}
	if len(report.Skipped) > 0 {
		printWarning("Skipped %d unreadable manifest(s)", len(report.Skipped))
		for _, s := range report.Skipped {
			printDetail("%s", s.Path)
		}
	}
	if report.Counts().CycleEdges > 0 {
		printInfo("Cycle edges are marked %s in the diagram", StyleCycle.Render(report.Style))
	}
}
