// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"

	"github.com/pdiddy/paper-finder/pkg/types"
)

// ResearchGateBackend stands in for ResearchGate, which offers no public
// search API. It returns one placeholder record per call, does no I/O,
// ignores limit and never fails.
type ResearchGateBackend struct{}

// Name returns the backend identifier.
func (ResearchGateBackend) Name() string { return types.SourceResearchGate }

// Fetch returns the placeholder record for query.
func (ResearchGateBackend) Fetch(_ context.Context, query string, _ int) ([]types.PaperRecord, error) {
	return []types.PaperRecord{{
		Title:   fmt.Sprintf("ResearchGate Placeholder for '%s'", query),
		Authors: "N/A",
		Summary: "ResearchGate data not accessible via API.",
		URL:     "https://www.researchgate.net/",
		Source:  "ResearchGate",
	}}, nil
}
