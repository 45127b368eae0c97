// Package membership decides which discovered components belong to a
// workspace.
//
// A workspace root declares member and exclude entries. Entries containing
// a wildcard ('*', '?' or '[') are glob patterns resolved relative to the
// root directory, with '**' matching any number of directories. Other
// entries are literal paths. Every resolved path is canonicalized (made
// absolute with symlinks evaluated) so that discovered component
// directories can be compared by identity.
//
// A component is local when its canonical location is a member and not
// excluded. Without a workspace declaration every component is local.
package membership

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/wsgraph/pkg/errors"
)

const wildcardChars = "*?["

// Patterns is the member declaration of a workspace root.
type Patterns struct {
	Members []string `json:"members"`
	Exclude []string `json:"exclude,omitempty"`
}

// Set is a resolved membership decision.
//
// The zero value rejects every location; use [Resolve] or [PassThrough].
type Set struct {
	passThrough bool
	members     map[string]struct{}
	excluded    map[string]struct{}
}

// PassThrough returns a set that accepts every location.
func PassThrough() *Set {
	return &Set{passThrough: true}
}

// Resolve expands the member and exclude entries of p against base.
//
// A nil p means the root declares no workspace and yields [PassThrough].
// Patterns matching nothing and literal paths that do not exist are not
// errors; a syntactically invalid pattern is.
func Resolve(base string, p *Patterns) (*Set, error) {
	if p == nil {
		return PassThrough(), nil
	}

	members, err := expand(base, p.Members)
	if err != nil {
		return nil, err
	}
	excluded, err := expand(base, p.Exclude)
	if err != nil {
		return nil, err
	}
	return &Set{members: members, excluded: excluded}, nil
}

// Contains reports whether the component at location is local.
func (s *Set) Contains(location string) bool {
	if s.passThrough {
		return true
	}
	loc := Canonicalize(location)
	if _, ok := s.excluded[loc]; ok {
		return false
	}
	_, ok := s.members[loc]
	return ok
}

// IsPassThrough reports whether the set accepts every location.
func (s *Set) IsPassThrough() bool { return s.passThrough }

// Members returns the resolved member paths in lexicographic order.
func (s *Set) Members() []string {
	return slices.Sorted(maps.Keys(s.members))
}

// Excluded returns the resolved exclude paths in lexicographic order.
func (s *Set) Excluded() []string {
	return slices.Sorted(maps.Keys(s.excluded))
}

// IsPattern reports whether entry contains a wildcard character.
func IsPattern(entry string) bool {
	return strings.ContainsAny(entry, wildcardChars)
}

// Canonicalize returns the absolute, symlink-free form of path. If that
// fails (typically because path does not exist) the cleaned input is
// returned unchanged.
func Canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return filepath.Clean(path)
	}
	return real
}

func expand(base string, entries []string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	for _, entry := range entries {
		joined := entry
		if !filepath.IsAbs(entry) {
			joined = filepath.Join(base, entry)
		}

		if !IsPattern(entry) {
			out[Canonicalize(joined)] = struct{}{}
			continue
		}

		if !doublestar.ValidatePathPattern(entry) {
			return nil, errors.New(errors.ErrCodeInvalidPattern, "invalid member pattern %q", entry)
		}
		pattern := entry
		if !filepath.IsAbs(entry) {
			pattern = filepath.Join(escapeMeta(base), entry)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "expand member pattern %q", entry)
		}
		for _, m := range matches {
			out[Canonicalize(m)] = struct{}{}
		}
	}
	return out, nil
}

// escapeMeta quotes glob metacharacters in a literal path so that only the
// member entry is matched as a pattern. On Windows the backslash is the path
// separator and cannot escape, so paths are returned unchanged.
func escapeMeta(path string) string {
	if filepath.Separator == '\\' {
		return path
	}
	var b strings.Builder
	for _, r := range path {
		if strings.ContainsRune(`*?[]{}\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
