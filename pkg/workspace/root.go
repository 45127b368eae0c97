package workspace

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/wsgraph/pkg/errors"
	"github.com/matzehuels/wsgraph/pkg/membership"
)

// Root is the parsed root manifest of a workspace.
type Root struct {
	Dir       string               // Canonical workspace directory
	Workspace *membership.Patterns // nil when no [workspace] section exists
	Package   *Manifest            // Root [package], nil for virtual manifests
}

// LoadRoot reads dir/Cargo.toml.
//
// It fails with NO_ROOT_MANIFEST if the file cannot be read, with
// INVALID_MANIFEST if it cannot be decoded, and with NO_WORKSPACE if
// opts.RequireWorkspace is set and there is no [workspace] section.
func LoadRoot(dir string, opts Options) (*Root, error) {
	opts = opts.WithDefaults()
	path := filepath.Join(dir, ManifestName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNoRootManifest, err, "no readable %s in %s", ManifestName, dir)
	}

	parsed, err := parseFile(data, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "root manifest %s", path)
	}

	root := &Root{
		Dir:       membership.Canonicalize(dir),
		Workspace: parsed.patterns(),
	}
	if opts.RequireWorkspace && root.Workspace == nil {
		return nil, errors.New(errors.ErrCodeNoWorkspace,
			"%s has no [workspace] section; this directory does not look like a workspace", path)
	}

	if parsed.cargo.Package != nil {
		pkg, err := parsed.manifest()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "root package in %s", path)
		}
		pkg.Dir = root.Dir
		root.Package = pkg
	}
	return root, nil
}

// IsVirtual reports whether the root has no [package] of its own.
func (r *Root) IsVirtual() bool { return r.Package == nil }
