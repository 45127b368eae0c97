package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/wsgraph/pkg/graph/analysis"
	"github.com/matzehuels/wsgraph/pkg/pipeline"
	"github.com/matzehuels/wsgraph/pkg/render/mmdc"
)

func newTestServer(t *testing.T, dir string) *httptest.Server {
	t.Helper()
	c := New(&bytes.Buffer{}, LogInfo)
	runner := pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	runner.Renderer = mmdc.New(filepath.Join(t.TempDir(), "no-mmdc"))
	srv := httptest.NewServer(c.newServer(runner, pipeline.Options{Dir: dir}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get("Content-Type"), body
}

func TestServeDiagramMatchesEmitter(t *testing.T) {
	dir := sampleWorkspace(t)
	srv := newTestServer(t, dir)

	report, err := pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{})).
		Analyze(context.Background(), pipeline.Options{Dir: dir})
	require.NoError(t, err)

	status, ctype, body := get(t, srv.URL+"/diagram")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, ctype, "text/plain")
	assert.Equal(t, report.Diagram, string(body))
}

func TestServeJSONRoutes(t *testing.T) {
	srv := newTestServer(t, sampleWorkspace(t))

	status, _, body := get(t, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, status)
	var metrics analysis.Metrics
	require.NoError(t, json.Unmarshal(body, &metrics))
	assert.Equal(t, 2, metrics["api"].FanIn)
	assert.Equal(t, 1.0, metrics["cli"].Instability)

	status, _, body = get(t, srv.URL+"/report")
	require.Equal(t, http.StatusOK, status)
	var doc struct {
		Counts pipeline.Counts `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, 4, doc.Counts.Components)
	assert.Equal(t, 2, doc.Counts.CycleEdges)

	status, _, body = get(t, srv.URL+"/graph")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"api"`)
}

func TestServeHealthz(t *testing.T) {
	srv := newTestServer(t, t.TempDir())
	status, _, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok\n", string(body))
}

func TestServeErrors(t *testing.T) {
	srv := newTestServer(t, sampleWorkspace(t))

	status, _, body := get(t, srv.URL+"/artifact/pdf")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "INVALID_FORMAT")

	status, _, body = get(t, srv.URL+"/artifact/svg")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(body), "RENDERER_UNAVAILABLE")

	status, _, _ = get(t, srv.URL+"/artifact/mmd")
	assert.Equal(t, http.StatusOK, status)

	empty := newTestServer(t, t.TempDir())
	status, _, body = get(t, empty.URL+"/report")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(body), "NO_ROOT_MANIFEST")
}
