// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/paper-finder/internal/httputil"
)

const sampleArxivSearchXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/1706.03762v1</id>
    <title>Attention Is
      All You Need</title>
    <summary>  We propose a new architecture
      based solely on attention mechanisms.  </summary>
    <published>2017-06-12T17:57:34Z</published>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/1810.04805v2</id>
    <title>BERT: Pre-training of Deep Bidirectional Transformers</title>
    <summary></summary>
    <published>2018-10-11T00:00:00Z</published>
  </entry>
</feed>`

const sampleArxivErrorXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/api/errors#incorrect_id_format_for_1234</id>
    <title>Error</title>
    <summary>incorrect id format for 1234</summary>
  </entry>
</feed>`

func testClient(ts *httptest.Server) *httputil.Client {
	return &httputil.Client{HTTP: ts.Client()}
}

func arxivTestServer(t *testing.T, status int, body string, capture **http.Request) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = r
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	t.Cleanup(func() { arxivAPIBase = old })
	return ts
}

func TestArxivBackendFetch(t *testing.T) {
	var req *http.Request
	ts := arxivTestServer(t, http.StatusOK, sampleArxivSearchXML, &req)

	b := &ArxivBackend{Client: testClient(ts), UserAgent: "test/0.1"}
	records, err := b.Fetch(context.Background(), "quantum computing author:Smith", 5)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	r := records[0]
	if r.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.Summary != "We propose a new architecture based solely on attention mechanisms." {
		t.Errorf("Summary = %q", r.Summary)
	}
	if r.Authors != "Ashish Vaswani, Noam Shazeer" {
		t.Errorf("Authors = %q", r.Authors)
	}
	if r.URL != "http://arxiv.org/abs/1706.03762v1" {
		t.Errorf("URL = %q", r.URL)
	}
	if r.Source != "ArXiv" {
		t.Errorf("Source = %q, want ArXiv", r.Source)
	}

	// Missing authors get the default; an empty summary stays empty.
	if records[1].Authors != "Unknown" {
		t.Errorf("records[1].Authors = %q, want Unknown", records[1].Authors)
	}
	if records[1].Summary != "" {
		t.Errorf("records[1].Summary = %q, want empty", records[1].Summary)
	}

	q := req.URL.Query()
	if got := q.Get("search_query"); got != "quantum computing author:Smith" {
		t.Errorf("search_query = %q", got)
	}
	if got := q.Get("max_results"); got != "5" {
		t.Errorf("max_results = %q, want 5", got)
	}
	if got := q.Get("start"); got != "0" {
		t.Errorf("start = %q, want 0", got)
	}
	if q.Get("sortBy") != "relevance" || q.Get("sortOrder") != "descending" {
		t.Errorf("sort params = %q/%q", q.Get("sortBy"), q.Get("sortOrder"))
	}
	if got := req.Header.Get("User-Agent"); got != "test/0.1" {
		t.Errorf("User-Agent = %q", got)
	}
}

func TestArxivBackendDefaultLimit(t *testing.T) {
	var req *http.Request
	arxivTestServer(t, http.StatusOK, sampleArxivSearchXML, &req)

	b := &ArxivBackend{}
	if _, err := b.Fetch(context.Background(), "x", 0); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := req.URL.Query().Get("max_results"); got != "10" {
		t.Errorf("max_results = %q, want 10", got)
	}
}

func TestArxivBackendTruncatesToLimit(t *testing.T) {
	arxivTestServer(t, http.StatusOK, sampleArxivSearchXML, nil)

	b := &ArxivBackend{}
	records, err := b.Fetch(context.Background(), "attention", 1)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1", len(records))
	}
}

func TestArxivBackendSkipsErrorEntries(t *testing.T) {
	arxivTestServer(t, http.StatusOK, sampleArxivErrorXML, nil)

	b := &ArxivBackend{}
	records, err := b.Fetch(context.Background(), "id_list=1234", 5)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("records = %v, want empty non-nil", records)
	}
}

func TestArxivBackendErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, "boom"},
		{"bad request", http.StatusBadRequest, ""},
		{"malformed xml", http.StatusOK, "<feed><entry>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arxivTestServer(t, tt.status, tt.body, nil)

			b := &ArxivBackend{}
			if _, err := b.Fetch(context.Background(), "x", 5); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestArxivBackendName(t *testing.T) {
	if got := (&ArxivBackend{}).Name(); got != "arxiv" {
		t.Errorf("Name() = %q, want arxiv", got)
	}
}
