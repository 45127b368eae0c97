// Package mmdc renders Mermaid text to images with the external Mermaid CLI
// (mmdc, from @mermaid-js/mermaid-cli).
//
// The binary must be on PATH or configured explicitly. Check it with
// [Renderer.Check] before rendering:
//
//	r := mmdc.New("")
//	if err := r.Check(ctx); err != nil {
//	    // RENDERER_UNAVAILABLE
//	}
//	svg, err := r.Render(ctx, diagram, mmdc.FormatSVG)
package mmdc

import (
	"bytes"
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/matzehuels/wsgraph/pkg/errors"
)

// DefaultBinary is the executable looked up on PATH.
const DefaultBinary = "mmdc"

// Output formats supported by mmdc.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// InstallHint tells users how to get the renderer.
const InstallHint = "npm install -g @mermaid-js/mermaid-cli"

// Renderer runs the Mermaid CLI.
type Renderer struct {
	binary string
}

// New returns a renderer for binary, or [DefaultBinary] if binary is empty.
func New(binary string) *Renderer {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Renderer{binary: binary}
}

// Binary returns the configured executable.
func (r *Renderer) Binary() string { return r.binary }

// Check runs "mmdc --version" and returns the reported version.
func (r *Renderer) Check(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, r.binary, "--version").Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", errors.Wrap(errors.ErrCodeRendererUnavailable, err,
			"%s is not installed or not working (install with: %s)", r.binary, InstallHint)
	}
	return strings.TrimSpace(string(out)), nil
}

// Render converts diagram to format ("svg" or "png"). The diagram is
// written to a temporary .mmd file that is removed afterwards.
func (r *Renderer) Render(ctx context.Context, diagram, format string) ([]byte, error) {
	if format != FormatSVG && format != FormatPNG {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "mmdc cannot render %q", format)
	}

	tmp, err := os.MkdirTemp("", "wsgraph-mmdc-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create temp dir")
	}
	defer os.RemoveAll(tmp)

	in := filepath.Join(tmp, "diagram.mmd")
	out := filepath.Join(tmp, "diagram."+format)
	if err := os.WriteFile(in, []byte(diagram), 0o644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", in)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, "-i", in, "-o", out)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if stderrors.Is(err, exec.ErrNotFound) || stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeRendererUnavailable, err,
				"%s is not installed (install with: %s)", r.binary, InstallHint)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "no output"
		}
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "%s failed: %s", r.binary, msg)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "%s produced no %s output", r.binary, format)
	}
	return data, nil
}
