// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Source identifiers accepted in SearchRequest.Sources.
const (
	SourceArxiv           = "arxiv"
	SourceSemanticScholar = "semanticscholar"
	SourceResearchGate    = "researchgate"
	SourceOpenAlex        = "openalex"
)

// DefaultSources are the sources enabled when none are configured.
var DefaultSources = []string{SourceArxiv, SourceSemanticScholar, SourceResearchGate}

// KnownSources lists every source identifier in canonical order.
var KnownSources = []string{SourceArxiv, SourceSemanticScholar, SourceResearchGate, SourceOpenAlex}

// SearchRequest carries everything one user-triggered search needs. It is
// built fresh for each search and never persisted.
type SearchRequest struct {
	// Topic is the raw free-text topic.
	Topic string `json:"topic" yaml:"topic" validate:"required"`

	// Sources lists the enabled source identifiers, in the order their
	// results are concatenated.
	Sources []string `json:"sources" yaml:"sources" validate:"required,min=1,dive,oneof=arxiv semanticscholar researchgate openalex"`

	// Limit is the per-source result count.
	Limit int `json:"limit" yaml:"limit" validate:"min=1,max=100"`

	// Keywords are the selected refinement keywords, in selection order.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Author is an optional author filter.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Year is an optional year filter.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`
}
