// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/paper-finder/internal/httputil"
	"github.com/pdiddy/paper-finder/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivBackend queries the arXiv API.
type ArxivBackend struct {
	Client    *httputil.Client
	UserAgent string
}

// Name returns the backend identifier.
func (b *ArxivBackend) Name() string { return types.SourceArxiv }

// Fetch queries the arXiv API sorted by relevance. The query is sent
// verbatim as search_query.
func (b *ArxivBackend) Fetch(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=relevance&sortOrder=descending",
		arxivAPIBase, url.QueryEscape(query), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}

	resp, err := clientOrDefault(b.Client).Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("arxiv request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arxiv response: %w", err)
	}

	records := make([]types.PaperRecord, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		// arXiv reports query errors as an entry whose id is not an abstract page.
		if !strings.Contains(entry.ID, "/abs/") {
			continue
		}

		var names []string
		for _, a := range entry.Authors {
			if name := collapseSpace(a.Name); name != "" {
				names = append(names, name)
			}
		}

		records = append(records, types.PaperRecord{
			Title:   collapseSpace(entry.Title),
			Authors: joinAuthors(names),
			Summary: collapseSpace(entry.Summary),
			URL:     strings.TrimSpace(entry.ID),
			Source:  "ArXiv",
		})
		if len(records) == limit {
			break
		}
	}
	return records, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID      string        `xml:"id"`
	Title   string        `xml:"title"`
	Summary string        `xml:"summary"`
	Authors []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// collapseSpace trims s and collapses internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// joinAuthors joins names with ", ", or returns the default when empty.
func joinAuthors(names []string) string {
	if len(names) == 0 {
		return types.DefaultAuthors
	}
	return strings.Join(names, ", ")
}

// orDefault returns def when s is empty.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// clientOrDefault returns c, or a client with no rate limit and no retries.
func clientOrDefault(c *httputil.Client) *httputil.Client {
	if c != nil {
		return c
	}
	return defaultClient
}

var defaultClient = &httputil.Client{HTTP: http.DefaultClient}
