// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "strings"

// BuildQuery combines the topic, selected keywords and optional filters
// into the single query string sent to every source. Keywords keep their
// selection order; empty keywords are skipped.
func BuildQuery(topic string, keywords []string, author, year string) string {
	parts := []string{topic}
	for _, kw := range keywords {
		if kw != "" {
			parts = append(parts, kw)
		}
	}
	if author != "" {
		parts = append(parts, "author:"+author)
	}
	if year != "" {
		parts = append(parts, "year:"+year)
	}
	return strings.Join(parts, " ")
}
