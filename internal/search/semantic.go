// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-finder/internal/httputil"
	"github.com/pdiddy/paper-finder/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,authors,url,abstract"

// DefaultSemanticTimeout bounds a Semantic Scholar fetch when no timeout is configured.
const DefaultSemanticTimeout = 10 * time.Second

// SemanticScholarBackend queries the Semantic Scholar graph API.
type SemanticScholarBackend struct {
	Client    *httputil.Client
	UserAgent string

	// APIKey is sent as x-api-key when set.
	APIKey string

	// Timeout bounds the whole fetch, retries included.
	Timeout time.Duration
}

// Name returns the backend identifier.
func (b *SemanticScholarBackend) Name() string { return types.SourceSemanticScholar }

// Fetch queries the Semantic Scholar paper search. Missing fields are
// filled with the PaperRecord defaults.
func (b *SemanticScholarBackend) Fetch(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultSemanticTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	params := url.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(limit)},
		"fields": {semanticFields},
	}
	reqURL := semanticAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}
	if b.APIKey != "" {
		req.Header.Set("x-api-key", b.APIKey)
	}

	resp, err := clientOrDefault(b.Client).Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("semantic scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semantic scholar returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing semantic scholar response: %w", err)
	}

	records := make([]types.PaperRecord, 0, len(sr.Data))
	for _, paper := range sr.Data {
		var names []string
		for _, a := range paper.Authors {
			if name := strings.TrimSpace(a.Name); name != "" {
				names = append(names, name)
			}
		}
		records = append(records, types.PaperRecord{
			Title:   orDefault(paper.Title, types.DefaultTitle),
			Authors: joinAuthors(names),
			Summary: orDefault(paper.Abstract, types.DefaultSummary),
			URL:     orDefault(paper.URL, types.DefaultURL),
			Source:  "Semantic Scholar",
		})
	}
	return records, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID  string           `json:"paperId"`
	Title    string           `json:"title"`
	Abstract string           `json:"abstract"`
	URL      string           `json:"url"`
	Authors  []semanticAuthor `json:"authors"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}
