package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleWorkspace writes a workspace with a cycle between api and db, an
// external dependency (serde) and an excluded crate (legacy).
func sampleWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"Cargo.toml": "[workspace]\nmembers = [\"crates/*\"]\nexclude = [\"crates/legacy\"]\n",
		"crates/core/Cargo.toml": "[package]\nname = \"core\"\n\n[dependencies]\nserde = \"1\"\n",
		"crates/api/Cargo.toml": "[package]\nname = \"api\"\n\n[dependencies]\n" +
			"core = { path = \"../core\" }\ndb = { path = \"../db\" }\n",
		"crates/db/Cargo.toml":     "[package]\nname = \"db\"\n\n[dependencies]\napi = { path = \"../api\" }\n",
		"crates/cli/Cargo.toml":    "[package]\nname = \"cli\"\n\n[dependencies]\napi = { path = \"../api\" }\n",
		"crates/legacy/Cargo.toml": "[package]\nname = \"legacy\"\n\n[dependencies]\ncore = \"0.1\"\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		if name != "Cargo.toml" {
			require.NoError(t, os.MkdirAll(filepath.Join(filepath.Dir(path), "src"), 0o755))
		}
	}
	return dir
}

// isolate keeps tests away from the user's cache directory and environment.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("WSGRAPH_RENDERER_BINARY", filepath.Join(t.TempDir(), "no-mmdc"))
}
