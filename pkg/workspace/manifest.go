package workspace

import (
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wsgraph/pkg/errors"
	"github.com/matzehuels/wsgraph/pkg/membership"
)

// ManifestName is the file name of a Cargo manifest.
const ManifestName = "Cargo.toml"

// Dependency table names.
const (
	sectionDependencies      = "dependencies"
	sectionDevDependencies   = "dev-dependencies"
	sectionBuildDependencies = "build-dependencies"
)

// Options controls which parts of a manifest are read.
type Options struct {
	IncludeDev       bool                 // Read [dev-dependencies]
	IncludeBuild     bool                 // Read [build-dependencies]
	RequireWorkspace bool                 // LoadRoot fails without [workspace]
	Logger           func(string, ...any) // Skip/progress callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

func (o Options) sections() map[string]bool {
	s := map[string]bool{sectionDependencies: true}
	if o.IncludeDev {
		s[sectionDevDependencies] = true
	}
	if o.IncludeBuild {
		s[sectionBuildDependencies] = true
	}
	return s
}

// Manifest is a parsed component manifest.
type Manifest struct {
	Name         string   `json:"name"`
	Version      string   `json:"version,omitempty"`
	Dependencies []string `json:"dependencies"`
	Dir          string   `json:"dir"` // Canonical directory holding the manifest
}

type cargoFile struct {
	Package *struct {
		Name    string `toml:"name"`
		Version any    `toml:"version"` // string, or {workspace = true}
	} `toml:"package"`
	Workspace *struct {
		Members []string `toml:"members"`
		Exclude []string `toml:"exclude"`
	} `toml:"workspace"`
}

type parsedFile struct {
	cargo        cargoFile
	dependencies []string
}

// ParseManifest decodes a component manifest. The result has no Dir set.
func ParseManifest(data []byte, opts Options) (*Manifest, error) {
	parsed, err := parseFile(data, opts)
	if err != nil {
		return nil, err
	}
	return parsed.manifest()
}

func parseFile(data []byte, opts Options) (*parsedFile, error) {
	var cargo cargoFile
	md, err := toml.Decode(string(data), &cargo)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	return &parsedFile{
		cargo:        cargo,
		dependencies: dependencyNames(md, opts.sections()),
	}, nil
}

func (p *parsedFile) manifest() (*Manifest, error) {
	if p.cargo.Package == nil {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest has no [package] section")
	}
	if err := errors.ValidateComponentName(p.cargo.Package.Name); err != nil {
		return nil, err
	}
	m := &Manifest{
		Name:         p.cargo.Package.Name,
		Dependencies: p.dependencies,
	}
	if v, ok := p.cargo.Package.Version.(string); ok {
		m.Version = v
	}
	return m, nil
}

func (p *parsedFile) patterns() *membership.Patterns {
	if p.cargo.Workspace == nil {
		return nil
	}
	return &membership.Patterns{
		Members: p.cargo.Workspace.Members,
		Exclude: p.cargo.Workspace.Exclude,
	}
}

// dependencyNames returns the keys of the selected dependency tables in
// document order. Inline tables, [dependencies.name] tables and dotted keys
// all contribute their second key component. A name listed in more than
// one table is returned once.
func dependencyNames(md toml.MetaData, sections map[string]bool) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, key := range md.Keys() {
		if len(key) < 2 || !sections[key[0]] {
			continue
		}
		if name := key[1]; !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
