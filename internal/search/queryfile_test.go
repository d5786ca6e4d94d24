// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/paper-finder/pkg/types"
)

func TestQueryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	req := types.SearchRequest{
		Topic:    "graph neural networks",
		Sources:  []string{"arxiv", "semanticscholar"},
		Limit:    5,
		Keywords: []string{"graph neural networks"},
	}
	out := SearchOutput{
		Query: "graph neural networks graph neural networks",
		Results: []types.RankedPaper{
			{PaperRecord: paper("GCN", "Semi-supervised classification, with graphs.", "ArXiv"), Rank: 1, Score: 0.75},
		},
		Fetched:      3,
		Dropped:      2,
		SourceErrors: []string{"semanticscholar: HTTP 500"},
	}

	if err := WriteQueryFile(path, req, out); err != nil {
		t.Fatalf("WriteQueryFile: %v", err)
	}
	qf, err := ReadQueryFile(path)
	if err != nil {
		t.Fatalf("ReadQueryFile: %v", err)
	}

	if !reflect.DeepEqual(qf.Request, req) {
		t.Errorf("Request = %+v, want %+v", qf.Request, req)
	}
	if got := qf.Output(); !reflect.DeepEqual(got, out) {
		t.Errorf("Output() = %+v, want %+v", got, out)
	}
	if qf.Summary.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestReadQueryFileErrors(t *testing.T) {
	if _, err := ReadQueryFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
