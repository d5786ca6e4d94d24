// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank orders paper records by lexical relevance to a query.
//
// Each scorable record becomes one document, the normalized title and
// summary. A TF-IDF space is fit jointly over those documents and the raw
// query, and records are sorted by descending cosine similarity to the
// query row. Ties keep their input order. Records with neither title nor
// summary cannot be scored and are left out of the result.
package rank

import (
	"sort"

	"github.com/pdiddy/paper-finder/internal/textnorm"
	"github.com/pdiddy/paper-finder/pkg/types"
)

// Document returns the text a record is scored by.
func Document(p types.PaperRecord) string {
	return textnorm.Normalize(p.Title + " " + p.Summary)
}

// scoredIndex pairs an input position with its similarity to the query.
type scoredIndex struct {
	index int
	score float64
}

// score computes similarities for every scorable paper, in input order.
func score(query string, papers []types.PaperRecord) []scoredIndex {
	var docs []string
	var kept []int
	for i, p := range papers {
		if !p.Scorable() {
			continue
		}
		docs = append(docs, Document(p))
		kept = append(kept, i)
	}
	if len(docs) == 0 {
		return nil
	}

	// The query is fit as the last document, unnormalized.
	v := Fit(append(docs, query))
	q := v.Row(len(docs))

	out := make([]scoredIndex, len(kept))
	for j, idx := range kept {
		out[j] = scoredIndex{index: idx, score: Cosine(q, v.Row(j))}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].score > out[b].score
	})
	return out
}

// Order returns the positions in papers of the ranked records, best first.
func Order(query string, papers []types.PaperRecord) []int {
	scored := score(query, papers)
	out := make([]int, len(scored))
	for i, s := range scored {
		out[i] = s.index
	}
	return out
}

// Rank returns the scorable records of papers sorted by descending
// relevance to query. The result is never nil.
func Rank(query string, papers []types.PaperRecord) []types.PaperRecord {
	order := Order(query, papers)
	out := make([]types.PaperRecord, len(order))
	for i, idx := range order {
		out[i] = papers[idx]
	}
	return out
}

// Scored is like Rank but keeps each record's rank and similarity score.
func Scored(query string, papers []types.PaperRecord) []types.RankedPaper {
	scored := score(query, papers)
	out := make([]types.RankedPaper, len(scored))
	for i, s := range scored {
		out[i] = types.RankedPaper{
			PaperRecord: papers[s.index],
			Rank:        i + 1,
			Score:       s.score,
		}
	}
	return out
}
