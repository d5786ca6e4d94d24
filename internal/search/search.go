// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries paper sources and returns one combined, ranked
// list. Each source is a Backend; Pipeline fans a query out to the enabled
// backends, tolerates per-source failures, and ranks the combined records
// against the query.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-finder/internal/rank"
	"github.com/pdiddy/paper-finder/pkg/types"
)

// DefaultLimit is the per-source result count used when none is given.
const DefaultLimit = 10

// Backend fetches paper records from a single source.
type Backend interface {
	// Name returns the source identifier, e.g. "arxiv".
	Name() string

	// Fetch returns up to limit records matching query.
	Fetch(ctx context.Context, query string, limit int) ([]types.PaperRecord, error)
}

// Recorder receives per-fetch and per-search measurements. It is
// satisfied by *observability.Metrics.
type Recorder interface {
	RecordFetch(source string, elapsed time.Duration, papers int, err error)
	RecordSearch(ranked int)
}

// Fetch runs b and never fails: an error is logged and yields an empty,
// non-nil list. A non-positive limit falls back to DefaultLimit. Returned
// records are in canonical form.
func Fetch(ctx context.Context, b Backend, query string, limit int, logger zerolog.Logger) []types.PaperRecord {
	records, _ := fetch(ctx, b, query, limit, logger, nil)
	return records
}

func fetch(ctx context.Context, b Backend, query string, limit int, logger zerolog.Logger, rec Recorder) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := time.Now()
	records, err := b.Fetch(ctx, query, limit)
	elapsed := time.Since(start)
	if rec != nil {
		rec.RecordFetch(b.Name(), elapsed, len(records), err)
	}

	if err != nil {
		logger.Warn().
			Str("source", b.Name()).
			Err(err).
			Dur("elapsed", elapsed).
			Msg("source fetch failed")
		return []types.PaperRecord{}, err
	}
	out := make([]types.PaperRecord, len(records))
	for i, r := range records {
		out[i] = r.Canonical()
	}
	logger.Debug().
		Str("source", b.Name()).
		Int("papers", len(out)).
		Dur("elapsed", elapsed).
		Msg("source fetch complete")
	return out, nil
}

// SearchOutput holds the ranked results and what happened along the way.
type SearchOutput struct {
	// Query is the final query string sent to every source.
	Query string `json:"query"`

	// Results are the ranked records, best first.
	Results []types.RankedPaper `json:"results"`

	// Fetched is the number of records the sources returned in total.
	Fetched int `json:"fetched"`

	// Dropped counts records with neither title nor summary.
	Dropped int `json:"dropped"`

	// DupsRemoved counts records merged away by deduplication.
	DupsRemoved int `json:"dups_removed"`

	// SourceErrors holds one "source: error" message per failed source.
	SourceErrors []string `json:"source_errors,omitempty"`
}

// Pipeline runs searches across a set of backends.
type Pipeline struct {
	// Backends maps source identifiers to their backend.
	Backends map[string]Backend

	Config  types.SearchConfig
	Logger  zerolog.Logger
	Metrics Recorder
}

// ErrInvalidRequest wraps every SearchRequest validation failure.
var ErrInvalidRequest = errors.New("invalid search request")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest checks req against its field constraints.
func ValidateRequest(req types.SearchRequest) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalidRequest, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// withDefaults fills a zero Limit and nil Sources from the pipeline config.
func (p *Pipeline) withDefaults(req types.SearchRequest) types.SearchRequest {
	if req.Limit == 0 {
		req.Limit = p.Config.Limit
		if req.Limit <= 0 {
			req.Limit = DefaultLimit
		}
	}
	if len(req.Sources) == 0 {
		req.Sources = p.Config.Sources
		if len(req.Sources) == 0 {
			req.Sources = types.DefaultSources
		}
	}
	return req
}

// Run validates req, builds the query, fetches from every requested source
// concurrently, optionally deduplicates, and ranks the combined records.
// Records are combined in the order of req.Sources regardless of which
// source answers first. A source failure is logged and reported in
// SourceErrors; it never fails the search.
func (p *Pipeline) Run(ctx context.Context, req types.SearchRequest) (SearchOutput, error) {
	req = p.withDefaults(req)
	if err := ValidateRequest(req); err != nil {
		return SearchOutput{}, err
	}

	query := BuildQuery(req.Topic, req.Keywords, req.Author, req.Year)
	p.Logger.Info().
		Str("query", query).
		Strs("sources", req.Sources).
		Int("limit", req.Limit).
		Msg("search started")

	slots := make([][]types.PaperRecord, len(req.Sources))
	errs := make([]error, len(req.Sources))
	var wg sync.WaitGroup

	for i, id := range req.Sources {
		if i > 0 && p.Config.InterBackendDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(p.Config.InterBackendDelay):
			}
		}
		if err := ctx.Err(); err != nil {
			for j := i; j < len(req.Sources); j++ {
				errs[j] = err
			}
			p.Logger.Warn().Err(err).Strs("sources", req.Sources[i:]).Msg("search cancelled before sources started")
			break
		}
		b, ok := p.Backends[id]
		if !ok {
			errs[i] = fmt.Errorf("source not configured")
			p.Logger.Warn().Str("source", id).Msg("source not configured")
			continue
		}
		wg.Add(1)
		go func(i int, b Backend) {
			defer wg.Done()
			slots[i], errs[i] = fetch(ctx, b, query, req.Limit, p.Logger, p.Metrics)
		}(i, b)
	}
	wg.Wait()

	out := SearchOutput{Query: query}
	var all []types.PaperRecord
	for i, records := range slots {
		if errs[i] != nil {
			out.SourceErrors = append(out.SourceErrors, fmt.Sprintf("%s: %v", req.Sources[i], errs[i]))
			continue
		}
		all = append(all, records...)
	}
	out.Fetched = len(all)

	if p.Config.Dedupe {
		all, out.DupsRemoved = deduplicate(all)
	}

	out.Results = rank.Scored(query, all)
	out.Dropped = len(all) - len(out.Results)

	if p.Metrics != nil {
		p.Metrics.RecordSearch(len(out.Results))
	}
	p.Logger.Info().
		Int("fetched", out.Fetched).
		Int("ranked", len(out.Results)).
		Int("dropped", out.Dropped).
		Int("source_errors", len(out.SourceErrors)).
		Msg("search complete")

	return out, nil
}
