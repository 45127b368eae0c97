package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wsgraph/pkg/cache"
	"github.com/matzehuels/wsgraph/pkg/errors"
	"github.com/matzehuels/wsgraph/pkg/graph"
	"github.com/matzehuels/wsgraph/pkg/render/mmdc"
)

// writeWorkspace creates files below a temp dir. Every directory holding a
// Cargo.toml also gets a src/ directory, except the root.
func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if filepath.Base(name) == "Cargo.toml" && filepath.Dir(name) != "." {
			if err := os.MkdirAll(filepath.Join(filepath.Dir(path), "src"), 0o755); err != nil {
				t.Fatal(err)
			}
		}
	}
	return dir
}

func crate(name string, deps ...string) string {
	var b strings.Builder
	b.WriteString("[package]\nname = \"" + name + "\"\nversion = \"0.1.0\"\n\n[dependencies]\n")
	for _, d := range deps {
		b.WriteString(d + " = \"1\"\n")
	}
	return b.String()
}

func sampleWorkspace(t *testing.T) string {
	return writeWorkspace(t, map[string]string{
		"Cargo.toml":               "[workspace]\nmembers = [\"crates/*\"]\nexclude = [\"crates/legacy\"]\n",
		"crates/core/Cargo.toml":   crate("core", "serde"),
		"crates/api/Cargo.toml":    crate("api", "core", "db"),
		"crates/db/Cargo.toml":     crate("db", "api", "core"),
		"crates/cli/Cargo.toml":    crate("cli", "api"),
		"crates/legacy/Cargo.toml": crate("legacy", "core"),
		"crates/broken/Cargo.toml": "[package\nname = ",
	})
}

func newTestRunner() *Runner {
	return NewRunner(nil, nil, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
}

func TestAnalyze(t *testing.T) {
	dir := sampleWorkspace(t)
	report, err := newTestRunner().Analyze(context.Background(), Options{Dir: dir})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	want := graph.FromMap(map[string][]string{
		"api":  {"core", "db"},
		"core": {},
		"db":   {"api", "core"},
		"cli":  {"api"},
	})
	if !report.Filtered.Equal(want) {
		t.Errorf("Filtered = %v, want %v", report.Filtered.Map(), want.Map())
	}

	wantCycles := graph.NewEdgeSet(graph.Edge{From: "api", To: "db"}, graph.Edge{From: "db", To: "api"})
	if len(report.Cycles) != len(wantCycles) {
		t.Errorf("Cycles = %v, want %v", report.Cycles.Sorted(), wantCycles.Sorted())
	}
	for e := range wantCycles {
		if !report.Cycles.Contains(e.From, e.To) {
			t.Errorf("missing cycle edge %s -> %s", e.From, e.To)
		}
	}

	got := report.Counts()
	wantCounts := Counts{
		Packages:      6,
		Members:       5,
		Components:    4,
		TotalEdges:    7,
		InternalEdges: 5,
		CycleEdges:    2,
		Skipped:       1,
	}
	if got != wantCounts {
		t.Errorf("Counts = %+v, want %+v", got, wantCounts)
	}

	if m := report.Metrics["api"]; m.FanIn != 2 || m.FanOut != 2 || m.Instability != 0.5 {
		t.Errorf("api metrics = %+v", m)
	}
	if m := report.Metrics["cli"]; m.Instability != 1 {
		t.Errorf("cli instability = %v, want 1", m.Instability)
	}
	if m := report.Metrics["core"]; m.Instability != 0 {
		t.Errorf("core instability = %v, want 0", m.Instability)
	}

	if !strings.Contains(report.Diagram, "    api --> db:::red\n") {
		t.Errorf("diagram missing cycle edge:\n%s", report.Diagram)
	}
	if strings.Contains(report.Diagram, "serde") || strings.Contains(report.Diagram, "legacy") {
		t.Errorf("diagram contains non-local components:\n%s", report.Diagram)
	}
	if report.ID == "" {
		t.Error("report has no ID")
	}
}

func TestAnalyzeStyle(t *testing.T) {
	dir := sampleWorkspace(t)
	report, err := newTestRunner().Analyze(context.Background(), Options{Dir: dir, Style: "bold"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(report.Diagram, "api --> db:::bold") {
		t.Errorf("diagram does not use bold marker:\n%s", report.Diagram)
	}
	if !strings.HasSuffix(report.Diagram, "classDef bold stroke:#000000,stroke-width:4px;\n") {
		t.Errorf("diagram does not end with bold definition:\n%s", report.Diagram)
	}

	if _, err := newTestRunner().Analyze(context.Background(), Options{Dir: dir, Style: "purple"}); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("unknown style error = %v", err)
	}
}

func TestAnalyzeNoWorkspaceSection(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"Cargo.toml":     crate("app", "lib", "anyhow"),
		"src/main.rs":    "",
		"lib/Cargo.toml": crate("lib"),
	})

	report, err := newTestRunner().Analyze(context.Background(), Options{Dir: dir})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := graph.FromMap(map[string][]string{"app": {"lib"}, "lib": {}})
	if !report.Filtered.Equal(want) {
		t.Errorf("Filtered = %v, want %v", report.Filtered.Map(), want.Map())
	}

	_, err = newTestRunner().Analyze(context.Background(), Options{Dir: dir, RequireWorkspace: true})
	if !errors.Is(err, errors.ErrCodeNoWorkspace) {
		t.Errorf("RequireWorkspace error = %v", err)
	}
}

func TestAnalyzeRootPackageIsLocal(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"Cargo.toml":       crate("app", "util") + "\n[workspace]\nmembers = [\"util\"]\n",
		"util/Cargo.toml":  crate("util"),
		"other/Cargo.toml": crate("other", "util"),
	})
	report, err := newTestRunner().Analyze(context.Background(), Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	want := graph.FromMap(map[string][]string{"app": {"util"}, "util": {}})
	if !report.Filtered.Equal(want) {
		t.Errorf("Filtered = %v, want %v", report.Filtered.Map(), want.Map())
	}
}

func TestAnalyzeMissingRoot(t *testing.T) {
	_, err := newTestRunner().Analyze(context.Background(), Options{Dir: t.TempDir()})
	if !errors.Is(err, errors.ErrCodeNoRootManifest) {
		t.Errorf("error = %v, want NO_ROOT_MANIFEST", err)
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		formats []string
		wantErr bool
	}{
		{nil, false},
		{[]string{"mmd", "svg", "png", "dot", "dot-svg", "dot-png", "json"}, false},
		{[]string{"svg", "pdf"}, true},
		{[]string{"SVG"}, true},
		{[]string{""}, true},
	}
	for _, tt := range tests {
		err := ValidateFormats(tt.formats)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	for format := range ValidFormats {
		if Extension(format) == "" {
			t.Errorf("no extension for %s", format)
		}
	}
	if !NeedsRenderer(FormatPNG) || NeedsRenderer(FormatDOTPNG) || NeedsRenderer(FormatMMD) {
		t.Error("NeedsRenderer misclassifies formats")
	}
	if !IsImage(FormatDOTSVG) || IsImage(FormatJSON) || IsImage(FormatDOT) {
		t.Error("IsImage misclassifies formats")
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{}.WithDefaults()
	if opts.Dir != "." {
		t.Errorf("Dir = %q", opts.Dir)
	}
	if opts.Style != "red" {
		t.Errorf("Style = %q", opts.Style)
	}
	if opts.Logger == nil {
		t.Error("Logger not set")
	}
}

func TestRenderTextFormats(t *testing.T) {
	dir := sampleWorkspace(t)
	r := newTestRunner()
	r.Renderer = mmdc.New(filepath.Join(t.TempDir(), "missing-mmdc"))
	ctx := context.Background()

	report, err := r.Analyze(ctx, Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := r.Render(ctx, report, []string{FormatMMD, FormatJSON, FormatDOT})
	if err != nil {
		t.Fatalf("text formats must not need the renderer: %v", err)
	}
	if string(artifacts[FormatMMD]) != report.Diagram {
		t.Error("mmd artifact differs from diagram")
	}
	if !strings.HasPrefix(string(artifacts[FormatDOT]), "digraph") {
		t.Errorf("dot artifact:\n%s", artifacts[FormatDOT])
	}

	var doc struct {
		Counts  Counts              `json:"counts"`
		Diagram string              `json:"diagram"`
		Cycles  []graph.Edge        `json:"cycles"`
		Skipped []map[string]string `json:"skipped"`
	}
	if err := json.Unmarshal(artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc.Diagram != report.Diagram || doc.Counts != report.Counts() {
		t.Error("json artifact does not match report")
	}
	if len(doc.Cycles) != 2 || doc.Cycles[0] != (graph.Edge{From: "api", To: "db"}) {
		t.Errorf("json cycles = %v", doc.Cycles)
	}
	if len(doc.Skipped) != 1 || doc.Skipped[0]["reason"] == "" {
		t.Errorf("json skipped = %v", doc.Skipped)
	}
}

func TestRenderMissingRenderer(t *testing.T) {
	dir := sampleWorkspace(t)
	r := newTestRunner()
	r.Renderer = mmdc.New(filepath.Join(t.TempDir(), "missing-mmdc"))
	ctx := context.Background()

	report, err := r.Analyze(ctx, Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	_, err = r.Render(ctx, report, []string{FormatSVG})
	if !errors.Is(err, errors.ErrCodeRendererUnavailable) {
		t.Errorf("error = %v, want RENDERER_UNAVAILABLE", err)
	}
}

func TestRenderUsesCache(t *testing.T) {
	dir := sampleWorkspace(t)
	tmp := t.TempDir()
	calls := filepath.Join(tmp, "calls")
	bin := filepath.Join(tmp, "mmdc")
	script := "#!/bin/sh\n" +
		"if [ \"$1\" = \"--version\" ]; then echo 11.4.2; exit 0; fi\n" +
		"echo x >> " + calls + "\n" +
		"while [ $# -gt 0 ]; do if [ \"$1\" = \"-o\" ]; then out=$2; fi; shift; done\n" +
		"echo '<svg/>' > \"$out\"\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	fc, err := cache.NewFileCache(filepath.Join(tmp, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
	r.Renderer = mmdc.New(bin)
	ctx := context.Background()

	report, err := r.Analyze(ctx, Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		artifacts, err := r.Render(ctx, report, []string{FormatSVG})
		if err != nil {
			t.Fatalf("Render #%d: %v", i+1, err)
		}
		if !strings.Contains(string(artifacts[FormatSVG]), "<svg/>") {
			t.Errorf("svg artifact = %q", artifacts[FormatSVG])
		}
	}

	data, err := os.ReadFile(calls)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "x"); n != 1 {
		t.Errorf("renderer ran %d times, want 1", n)
	}
}
