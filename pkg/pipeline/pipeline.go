// Package pipeline runs a workspace analysis from manifests to diagram.
//
// One run is: load the root manifest, discover component manifests, resolve
// workspace membership, build the dependency graph, drop external
// references, detect cycles, compute coupling metrics and emit the Mermaid
// diagram. The CLI and the report server both go through [Runner] so they
// behave the same.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	report, err := runner.Analyze(ctx, pipeline.Options{Dir: "."})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(report.Diagram)
//
// Rendering turns a report into files:
//
//	artifacts, err := runner.Render(ctx, report, []string{"svg", "json"})
//	svg := artifacts["svg"]
package pipeline

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wsgraph/pkg/errors"
	"github.com/matzehuels/wsgraph/pkg/render/mermaid"
	"github.com/matzehuels/wsgraph/pkg/workspace"
)

// Output formats.
const (
	FormatMMD     = "mmd"     // Mermaid text
	FormatSVG     = "svg"     // Mermaid text rendered by mmdc
	FormatPNG     = "png"     // Mermaid text rendered by mmdc
	FormatDOT     = "dot"     // Graphviz source
	FormatDOTSVG  = "dot-svg" // Graphviz source rendered in-process
	FormatDOTPNG  = "dot-png" // Graphviz source rendered in-process
	FormatJSON    = "json"    // Full report
	DefaultFormat = FormatMMD
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatMMD:    true,
	FormatSVG:    true,
	FormatPNG:    true,
	FormatDOT:    true,
	FormatDOTSVG: true,
	FormatDOTPNG: true,
	FormatJSON:   true,
}

var extensions = map[string]string{
	FormatMMD:    ".mmd",
	FormatSVG:    ".svg",
	FormatPNG:    ".png",
	FormatDOT:    ".dot",
	FormatDOTSVG: ".svg",
	FormatDOTPNG: ".png",
	FormatJSON:   ".json",
}

// Extension returns the file extension for format, including the dot.
func Extension(format string) string {
	return extensions[format]
}

// NeedsRenderer reports whether format is produced by the external Mermaid
// renderer.
func NeedsRenderer(format string) bool {
	return format == FormatSVG || format == FormatPNG
}

// IsImage reports whether format is binary or markup produced by a renderer
// rather than text computed in-process.
func IsImage(format string) bool {
	return NeedsRenderer(format) || strings.HasPrefix(format, "dot-")
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f, ValidFormats); err != nil {
			return err
		}
	}
	return nil
}

// Options configures one analysis run.
type Options struct {
	Dir              string // Workspace directory holding the root manifest
	Style            string // Cycle style name (red, orange, bold)
	IncludeDev       bool   // Count [dev-dependencies]
	IncludeBuild     bool   // Count [build-dependencies]
	RequireWorkspace bool   // Fail when the root has no [workspace] section

	Logger *log.Logger
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Style == "" {
		opts.Style = mermaid.DefaultStyle
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return opts
}

// Validate checks option values that can be wrong.
func (o Options) Validate() error {
	_, err := mermaid.ParseStyle(o.Style)
	return err
}

func (o Options) workspaceOptions() workspace.Options {
	logger := o.Logger
	return workspace.Options{
		IncludeDev:       o.IncludeDev,
		IncludeBuild:     o.IncludeBuild,
		RequireWorkspace: o.RequireWorkspace,
		Logger:           func(format string, args ...any) { logger.Warnf(format, args...) },
	}
}
