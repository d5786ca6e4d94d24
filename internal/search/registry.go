// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-finder/internal/httputil"
	"github.com/pdiddy/paper-finder/pkg/types"
)

// NewBackends builds one backend per known source from cfg. Every HTTP
// backend gets its own rate limiter.
func NewBackends(cfg types.SearchConfig, logger zerolog.Logger) map[string]Backend {
	client := func(source string) *httputil.Client {
		return httputil.NewClient(
			&http.Client{Timeout: cfg.Timeout},
			cfg.RateLimit,
			cfg.MaxRetries,
			logger.With().Str("source", source).Logger(),
		)
	}

	return map[string]Backend{
		types.SourceArxiv: &ArxivBackend{
			Client:    client(types.SourceArxiv),
			UserAgent: cfg.UserAgent,
		},
		types.SourceSemanticScholar: &SemanticScholarBackend{
			Client:    client(types.SourceSemanticScholar),
			UserAgent: cfg.UserAgent,
			APIKey:    cfg.SemanticScholarAPIKey,
			Timeout:   cfg.Timeout,
		},
		types.SourceResearchGate: ResearchGateBackend{},
		types.SourceOpenAlex: &OpenAlexBackend{
			Client:    client(types.SourceOpenAlex),
			UserAgent: cfg.UserAgent,
			Email:     cfg.OpenAlexEmail,
		},
	}
}

// NewPipeline returns a Pipeline over NewBackends(cfg, logger).
func NewPipeline(cfg types.SearchConfig, logger zerolog.Logger, metrics Recorder) *Pipeline {
	return &Pipeline{
		Backends: NewBackends(cfg, logger),
		Config:   cfg,
		Logger:   logger,
		Metrics:  metrics,
	}
}
