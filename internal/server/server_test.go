// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-finder/internal/export"
	"github.com/pdiddy/paper-finder/internal/library"
	"github.com/pdiddy/paper-finder/internal/observability"
	"github.com/pdiddy/paper-finder/internal/search"
	"github.com/pdiddy/paper-finder/pkg/types"
)

type stubBackend struct {
	name    string
	records []types.PaperRecord
	err     error

	mu    sync.Mutex
	query string
}

func (b *stubBackend) Name() string { return b.name }

func (b *stubBackend) Fetch(_ context.Context, query string, _ int) ([]types.PaperRecord, error) {
	b.mu.Lock()
	b.query = query
	b.mu.Unlock()
	return b.records, b.err
}

func (b *stubBackend) lastQuery() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}

type testEnv struct {
	ts      *httptest.Server
	arxiv   *stubBackend
	lib     *library.Store
	metrics *observability.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	lib, err := library.Open(types.LibraryConfig{Path: filepath.Join(t.TempDir(), "lib.db")})
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })

	arxiv := &stubBackend{name: types.SourceArxiv, records: []types.PaperRecord{
		{Title: "Graph neural networks", Authors: "T. Kipf", Summary: "Semi-supervised learning on graphs.", URL: "http://arxiv.org/abs/1609.02907", Source: "ArXiv"},
		{Title: "Image segmentation", Authors: "O. Ronneberger", Summary: "U-Net for biomedical images.", URL: "http://arxiv.org/abs/1505.04597", Source: "ArXiv"},
	}}
	metrics := observability.NewMetrics()
	logger := zerolog.Nop()

	pipeline := &search.Pipeline{
		Backends: map[string]search.Backend{
			types.SourceArxiv:           arxiv,
			types.SourceSemanticScholar: &stubBackend{name: types.SourceSemanticScholar, err: errors.New("HTTP 503")},
			types.SourceResearchGate:    search.ResearchGateBackend{},
		},
		Config:  types.SearchConfig{Limit: 5, Sources: types.DefaultSources},
		Logger:  logger,
		Metrics: metrics,
	}

	srv := New(types.ServerConfig{}, Deps{
		Searcher:     pipeline,
		Library:      lib,
		Metrics:      metrics.Handler(),
		AutoKeywords: 0,
		Logger:       logger,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, arxiv: arxiv, lib: lib, metrics: metrics}
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	var body map[string]string
	resp := getJSON(t, env.ts.URL+"/healthz", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))
}

func TestCorrelationIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodGet, env.ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Correlation-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "abc-123", resp.Header.Get("X-Correlation-ID"))
}

func TestSearchEndpoint(t *testing.T) {
	env := newTestEnv(t)

	var out search.SearchOutput
	resp := getJSON(t, env.ts.URL+"/api/v1/search?q=graph+neural+networks&keyword=gnn&author=Kipf", &out)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "graph neural networks gnn author:Kipf", out.Query)
	assert.Equal(t, out.Query, env.arxiv.lastQuery())
	assert.Equal(t, 3, out.Fetched)
	require.Len(t, out.Results, 3)
	assert.Equal(t, "Graph neural networks", out.Results[0].Title)
	assert.Equal(t, 1, out.Results[0].Rank)
	require.Len(t, out.SourceErrors, 1)
	assert.Contains(t, out.SourceErrors[0], "semanticscholar")
}

func TestSearchEndpointSourceFilter(t *testing.T) {
	env := newTestEnv(t)

	var out search.SearchOutput
	resp := getJSON(t, env.ts.URL+"/api/v1/search?q=anything&source=researchgate&limit=3", &out)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "ResearchGate", out.Results[0].Source)
	assert.Empty(t, out.SourceErrors)
}

func TestSearchEndpointBadRequests(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		query string
	}{
		{"missing q", ""},
		{"blank q", "q=%20%20"},
		{"non-numeric limit", "q=x&limit=ten"},
		{"limit out of range", "q=x&limit=500"},
		{"unknown source", "q=x&source=scopus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]string
			resp := getJSON(t, env.ts.URL+"/api/v1/search?"+tt.query, &body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestKeywordsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	var body map[string][]string
	resp := getJSON(t, env.ts.URL+"/api/v1/keywords?q=large+language+models+in+healthcare", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"large language models", "healthcare"}, body["keywords"])

	resp = getJSON(t, env.ts.URL+"/api/v1/keywords", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, body["keywords"])
	assert.Empty(t, body["keywords"])
}

func TestLibraryEndpoints(t *testing.T) {
	env := newTestEnv(t)

	records := []types.PaperRecord{
		{Title: "Graph neural networks", Authors: "T. Kipf", Summary: "Learning on graphs, semi-supervised.", URL: "u1", Source: "ArXiv"},
		{Title: "Protein folding", Authors: "J. Jumper", Summary: "Structure prediction.", URL: "u2", Source: "OpenAlex"},
	}
	payload, err := json.Marshal(records)
	require.NoError(t, err)

	resp, err := http.Post(env.ts.URL+"/api/v1/library", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	var saved map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 2, saved["added"])

	// Saving again adds nothing.
	resp, err = http.Post(env.ts.URL+"/api/v1/library", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
	resp.Body.Close()
	assert.Equal(t, 0, saved["added"])

	var list struct {
		Papers []types.SavedPaper `json:"papers"`
		Count  int                `json:"count"`
	}
	getJSON(t, env.ts.URL+"/api/v1/library", &list)
	assert.Equal(t, 2, list.Count)

	getJSON(t, env.ts.URL+"/api/v1/library?q=protein+structure", &list)
	require.NotEmpty(t, list.Papers)
	assert.Equal(t, "Protein folding", list.Papers[0].Title)

	resp, err = http.Get(env.ts.URL + "/api/v1/library/export.csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	exported, err := export.ReadCSV(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, records, exported)
}

func TestLibrarySaveCanonicalizesLineEndings(t *testing.T) {
	env := newTestEnv(t)

	body := `[{"title":"CRLF","authors":"A","summary":"one\r\ntwo","url":"u-crlf","source":"Semantic Scholar"}]`
	resp, err := http.Post(env.ts.URL+"/api/v1/library", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(env.ts.URL + "/api/v1/library/export.csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	exported, err := export.ReadCSV(resp.Body)
	require.NoError(t, err)
	require.Len(t, exported, 1)
	assert.Equal(t, "one\ntwo", exported[0].Summary)
}

func TestLibrarySaveRejectsBadBodies(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{`{"title":"not an array"}`, `[{"bogus":1}]`, `[{"authors":"x"}]`, `nope`} {
		resp, err := http.Post(env.ts.URL+"/api/v1/library", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %s", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	getJSON(t, env.ts.URL+"/api/v1/search?q=graphs", nil)

	resp, err := http.Get(env.ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `paper_finder_source_fetches_total{outcome="error",source="semanticscholar"} 1`)
	assert.Contains(t, string(body), "paper_finder_searches_total 1")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(types.ServerConfig{ShutdownTimeout: time.Second}, Deps{Logger: zerolog.Nop()})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
