package cache

// ArtifactKeyOpts identifies one rendering of a diagram.
type ArtifactKeyOpts struct {
	Format   string // mmd, svg, png, dot-svg, dot-png, json
	Style    string // cycle style name
	Renderer string // external renderer binary, if any
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key for a rendering of the content hashed as
	// contentHash.
	ArtifactKey(contentHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(contentHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", contentHash, opts.Format, opts.Style, opts.Renderer)
}

// ScopedKeyer prefixes every key of an inner Keyer, giving each workspace
// or deployment its own namespace in a shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(contentHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(contentHash, opts)
}
