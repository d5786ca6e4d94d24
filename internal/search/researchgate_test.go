// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-finder/pkg/types"
)

func TestResearchGateBackendFetch(t *testing.T) {
	for _, limit := range []int{0, 1, 50} {
		records, err := ResearchGateBackend{}.Fetch(context.Background(), "quantum computing", limit)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		want := []types.PaperRecord{{
			Title:   "ResearchGate Placeholder for 'quantum computing'",
			Authors: "N/A",
			Summary: "ResearchGate data not accessible via API.",
			URL:     "https://www.researchgate.net/",
			Source:  "ResearchGate",
		}}
		if len(records) != 1 || records[0] != want[0] {
			t.Errorf("limit %d: records = %+v", limit, records)
		}
	}
}

func TestNewBackends(t *testing.T) {
	cfg := testCfg()
	cfg.RateLimit = 2
	cfg.MaxRetries = 3
	cfg.SemanticScholarAPIKey = "k"
	cfg.OpenAlexEmail = "e@x.org"

	backends := NewBackends(cfg, zerolog.Nop())
	for _, id := range types.KnownSources {
		b, ok := backends[id]
		if !ok {
			t.Errorf("missing backend %q", id)
			continue
		}
		if b.Name() != id {
			t.Errorf("backends[%q].Name() = %q", id, b.Name())
		}
	}

	s2 := backends[types.SourceSemanticScholar].(*SemanticScholarBackend)
	if s2.APIKey != "k" || s2.Timeout != cfg.Timeout || s2.Client.MaxRetries != 3 || s2.Client.Limiter == nil {
		t.Errorf("semantic scholar backend = %+v", s2)
	}
	if oa := backends[types.SourceOpenAlex].(*OpenAlexBackend); oa.Email != "e@x.org" {
		t.Errorf("openalex email = %q", oa.Email)
	}
}
