// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pdiddy/paper-finder/internal/textnorm"
	"github.com/pdiddy/paper-finder/pkg/types"
)

// deduplicate merges records that share a URL or a normalized title. The
// first occurrence keeps its position; later ones fill its gaps.
func deduplicate(records []types.PaperRecord) ([]types.PaperRecord, int) {
	seen := make(map[string]int) // dedup key → index in deduped
	deduped := make([]types.PaperRecord, 0, len(records))
	removed := 0

	for _, r := range records {
		keys := dedupKeys(r)
		idx, dup := -1, false
		for _, k := range keys {
			if i, ok := seen[k]; ok {
				idx, dup = i, true
				break
			}
		}
		if dup {
			mergeInto(&deduped[idx], r)
			removed++
		} else {
			idx = len(deduped)
			deduped = append(deduped, r)
		}
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = idx
			}
		}
	}
	return deduped, removed
}

// dedupKeys returns the identity keys of r. Placeholder values never match.
func dedupKeys(r types.PaperRecord) []string {
	var keys []string
	if u := strings.TrimRight(strings.TrimSpace(r.URL), "/"); u != "" && u != types.DefaultURL && r.Source != "ResearchGate" {
		keys = append(keys, "url:"+strings.ToLower(u))
	}
	if t := normalizeTitle(r.Title); t != "" && r.Title != types.DefaultTitle {
		keys = append(keys, "title:"+t)
	}
	return keys
}

// mergeInto fills empty or placeholder fields of dst from src and records
// both sources.
func mergeInto(dst *types.PaperRecord, src types.PaperRecord) {
	if missing(dst.Title, types.DefaultTitle) && !missing(src.Title, types.DefaultTitle) {
		dst.Title = src.Title
	}
	if missing(dst.Authors, types.DefaultAuthors) && !missing(src.Authors, types.DefaultAuthors) {
		dst.Authors = src.Authors
	}
	if missing(dst.Summary, types.DefaultSummary) && !missing(src.Summary, types.DefaultSummary) {
		dst.Summary = src.Summary
	}
	if missing(dst.URL, types.DefaultURL) && !missing(src.URL, types.DefaultURL) {
		dst.URL = src.URL
	}
	if src.Source != "" && !containsSource(dst.Source, src.Source) {
		dst.Source = dst.Source + ", " + src.Source
	}
}

func missing(value, placeholder string) bool {
	return value == "" || value == placeholder
}

func containsSource(list, source string) bool {
	for _, s := range strings.Split(list, ", ") {
		if s == source {
			return true
		}
	}
	return false
}

// normalizeTitle returns the title in the ranker's normalized form.
func normalizeTitle(title string) string {
	return textnorm.Normalize(title)
}
