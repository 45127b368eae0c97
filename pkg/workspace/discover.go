package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/wsgraph/pkg/errors"
	"github.com/matzehuels/wsgraph/pkg/membership"
)

// sourceDir is the directory that marks a manifest directory as a package.
const sourceDir = "src"

// Skipped records a component manifest that could not be used.
type Skipped struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// Discovery is the result of walking a workspace tree.
type Discovery struct {
	Components   []Manifest // Parsed components in walk order
	Skipped      []Skipped  // Unreadable or unparsable manifests
	PackageCount int        // Directories with Cargo.toml and src/, parsed or not
}

// Discover walks dir and parses every package manifest below it, dir
// included. Unusable manifests are recorded in Skipped; only a failure to
// walk dir itself or context cancellation returns an error.
func Discover(ctx context.Context, dir string, opts Options) (*Discovery, error) {
	opts = opts.WithDefaults()
	out := &Discovery{}

	err := walkPackages(ctx, dir, func(pkgDir string) {
		out.PackageCount++
		path := filepath.Join(pkgDir, ManifestName)

		m, err := readManifest(path, opts)
		if err != nil {
			opts.Logger("skipping %s: %s", path, errors.UserMessage(err))
			out.Skipped = append(out.Skipped, Skipped{Path: path, Err: err})
			return
		}
		m.Dir = membership.Canonicalize(pkgDir)
		out.Components = append(out.Components, *m)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountPackages returns the number of directories below dir that contain a
// Cargo.toml and a src/ directory.
func CountPackages(ctx context.Context, dir string) (int, error) {
	n := 0
	err := walkPackages(ctx, dir, func(string) { n++ })
	return n, err
}

func readManifest(path string, opts Options) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest")
	}
	return ParseManifest(data, opts)
}

// walkPackages calls fn for every package directory below root. Hidden
// directories and build output (target/) are not descended into.
func walkPackages(ctx context.Context, root string, fn func(dir string)) error {
	root = membership.Canonicalize(root)
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "workspace directory %s", root)
	}
	if !info.IsDir() {
		return errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "walk %s", root)
			}
			// Unreadable subtrees are skipped.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return fs.SkipDir
		}
		if isPackageDir(path) {
			fn(path)
		}
		return nil
	})
}

func skipDir(name string) bool {
	return name == "target" || strings.HasPrefix(name, ".")
}

func isPackageDir(dir string) bool {
	if fi, err := os.Stat(filepath.Join(dir, ManifestName)); err != nil || fi.IsDir() {
		return false
	}
	fi, err := os.Stat(filepath.Join(dir, sourceDir))
	return err == nil && fi.IsDir()
}
