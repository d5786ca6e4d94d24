// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{"empty map", map[string][]int{}, ""},
		{"nil map", nil, ""},
		{"single word", map[string][]int{"hello": {0}}, "hello"},
		{
			name: "multi-word ordered",
			index: map[string][]int{
				"We": {0}, "propose": {1}, "a": {2}, "new": {3}, "method": {4},
			},
			want: "We propose a new method",
		},
		{
			name: "repeated word",
			index: map[string][]int{
				"the": {0, 4}, "cat": {1}, "sat": {2}, "on": {3}, "mat": {5},
			},
			want: "the cat sat on the mat",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reconstructAbstract(tt.index); got != tt.want {
				t.Errorf("reconstructAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}

const sampleOpenAlexJSON = `{
  "meta": {"count": 2, "per_page": 20, "page": 1},
  "results": [
    {
      "id": "https://openalex.org/W2741809807",
      "title": "Attention Is All You Need",
      "doi": "https://doi.org/10.5555/3295222.3295349",
      "authorships": [
        {"author": {"id": "A1", "display_name": "Ashish Vaswani"}},
        {"author": {"id": "A2", "display_name": "Noam Shazeer"}}
      ],
      "abstract_inverted_index": {
        "We": [0], "propose": [1], "a": [2, 5], "new": [3],
        "architecture": [4], "based": [6], "on": [7], "attention": [8]
      }
    },
    {
      "id": "https://openalex.org/W3210812345",
      "title": null,
      "doi": null,
      "authorships": [],
      "abstract_inverted_index": null
    }
  ]
}`

func openAlexTestServer(t *testing.T, status int, body string, capture **http.Request) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = r
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)

	old := openAlexSearchBase
	openAlexSearchBase = ts.URL
	t.Cleanup(func() { openAlexSearchBase = old })
	return ts
}

func TestOpenAlexBackendFetch(t *testing.T) {
	var req *http.Request
	ts := openAlexTestServer(t, http.StatusOK, sampleOpenAlexJSON, &req)

	b := &OpenAlexBackend{Client: testClient(ts), Email: "me@example.com"}
	records, err := b.Fetch(context.Background(), "attention", 300)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	r := records[0]
	if r.Summary != "We propose a new architecture a based on attention" {
		t.Errorf("Summary = %q", r.Summary)
	}
	if r.Authors != "Ashish Vaswani, Noam Shazeer" {
		t.Errorf("Authors = %q", r.Authors)
	}
	if r.URL != "https://doi.org/10.5555/3295222.3295349" {
		t.Errorf("URL = %q, want DOI", r.URL)
	}
	if r.Source != "OpenAlex" {
		t.Errorf("Source = %q", r.Source)
	}

	fallback := records[1]
	if fallback.URL != "https://openalex.org/W3210812345" {
		t.Errorf("URL = %q, want work id", fallback.URL)
	}
	if fallback.Title != "No title" || fallback.Summary != "No abstract" || fallback.Authors != "Unknown" {
		t.Errorf("defaults not applied: %+v", fallback)
	}

	q := req.URL.Query()
	if got := q.Get("search"); got != "attention" {
		t.Errorf("search = %q", got)
	}
	if got := q.Get("per_page"); got != "200" {
		t.Errorf("per_page = %q, want capped 200", got)
	}
	if got := q.Get("mailto"); got != "me@example.com" {
		t.Errorf("mailto = %q", got)
	}
}

func TestOpenAlexBackendNoEmail(t *testing.T) {
	var req *http.Request
	ts := openAlexTestServer(t, http.StatusOK, `{"results":[]}`, &req)

	b := &OpenAlexBackend{Client: testClient(ts)}
	records, err := b.Fetch(context.Background(), "x", 3)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
	if req.URL.Query().Has("mailto") {
		t.Error("mailto should be omitted without an email")
	}
}

func TestOpenAlexBackendErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server error", http.StatusInternalServerError, "", "openalex returned HTTP 500"},
		{"malformed json", http.StatusOK, "{not json", "parsing openalex response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := openAlexTestServer(t, tt.status, tt.body, nil)
			b := &OpenAlexBackend{Client: testClient(ts)}
			_, err := b.Fetch(context.Background(), "x", 3)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), tt.want) {
				t.Errorf("error = %q, want prefix %q", err, tt.want)
			}
		})
	}
}

func TestOpenAlexBackendName(t *testing.T) {
	if got := (&OpenAlexBackend{}).Name(); got != "openalex" {
		t.Errorf("Name() = %q, want openalex", got)
	}
}
