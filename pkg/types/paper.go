// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-finder pipeline:
// the common paper record every source adapter produces, the per-search
// request, ranked output, and configuration.
package types

import (
	"strings"
	"time"
)

// Default field values substituted by adapters when a source omits a field.
// Downstream text processing relies on every field being a real string.
const (
	DefaultTitle   = "No title"
	DefaultAuthors = "Unknown"
	DefaultSummary = "No abstract"
	DefaultURL     = "#"
)

// PaperRecord is the common shape every source adapter maps its results
// into. Every field is always present; adapters fill in defaults.
type PaperRecord struct {
	// Title is the paper title. May be empty for sources that report it so.
	Title string `json:"title" yaml:"title"`

	// Authors is a comma-joined list of author names ("A, B, C").
	Authors string `json:"authors" yaml:"authors"`

	// Summary is the abstract.
	Summary string `json:"summary" yaml:"summary"`

	// URL is a canonical link to the paper.
	URL string `json:"url" yaml:"url"`

	// Source is the display tag of the adapter that produced the record
	// (e.g. "ArXiv", "Semantic Scholar").
	Source string `json:"source" yaml:"source"`
}

// Scorable reports whether the record has any text the ranker can use.
func (p PaperRecord) Scorable() bool {
	return p.Title != "" || p.Summary != ""
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Canonical returns p with CRLF and lone CR line endings rewritten as LF.
// Records are canonicalized when they enter the system, so none carries a
// carriage return and every export format reproduces them exactly.
func (p PaperRecord) Canonical() PaperRecord {
	return PaperRecord{
		Title:   lineEndings.Replace(p.Title),
		Authors: lineEndings.Replace(p.Authors),
		Summary: lineEndings.Replace(p.Summary),
		URL:     lineEndings.Replace(p.URL),
		Source:  lineEndings.Replace(p.Source),
	}
}

// RankedPaper is a PaperRecord in ranked position. Rank is 1-based; Score
// is the cosine similarity the record was ordered by.
type RankedPaper struct {
	PaperRecord `yaml:",inline"`

	Rank  int     `json:"rank" yaml:"rank"`
	Score float64 `json:"score" yaml:"score"`
}

// SavedPaper is a PaperRecord persisted in the user's library.
type SavedPaper struct {
	PaperRecord `yaml:",inline"`

	ID      int64     `json:"id" yaml:"id"`
	SavedAt time.Time `json:"saved_at" yaml:"saved_at"`
}
