// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-finder/internal/export"
	"github.com/pdiddy/paper-finder/internal/keywords"
	"github.com/pdiddy/paper-finder/internal/search"
	"github.com/pdiddy/paper-finder/pkg/types"
)

// maxBodyBytes caps POST bodies.
const maxBodyBytes = 1 << 20

// searchHandler runs a search.
// GET /api/v1/search?q=&source=&limit=&keyword=&author=&year=
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	topic := strings.TrimSpace(q.Get("q"))
	if topic == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	req := types.SearchRequest{
		Topic:    topic,
		Sources:  q["source"],
		Keywords: q["keyword"],
		Author:   strings.TrimSpace(q.Get("author")),
		Year:     strings.TrimSpace(q.Get("year")),
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		req.Limit = limit
	}
	if len(req.Keywords) == 0 && s.deps.AutoKeywords > 0 {
		req.Keywords = keywords.Select(keywords.Extract(topic), s.deps.AutoKeywords)
	}

	out, err := s.deps.Searcher.Run(r.Context(), req)
	if err != nil {
		if errors.Is(err, search.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error().Err(err).Msg("search failed")
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// keywordsHandler suggests refinement keywords for a topic.
// GET /api/v1/keywords?q=
func (s *Server) keywordsHandler(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, map[string][]string{"keywords": keywords.Extract(topic)})
}

// listLibraryHandler lists saved papers, ranked against q when given.
// GET /api/v1/library[?q=]
func (s *Server) listLibraryHandler(w http.ResponseWriter, r *http.Request) {
	var (
		papers []types.SavedPaper
		err    error
	)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		papers, err = s.deps.Library.Find(r.Context(), q)
	} else {
		papers, err = s.deps.Library.List(r.Context())
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("listing library failed")
		writeError(w, http.StatusInternalServerError, "listing library failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"papers": papers, "count": len(papers)})
}

// saveLibraryHandler saves a JSON array of paper records.
// POST /api/v1/library
func (s *Server) saveLibraryHandler(w http.ResponseWriter, r *http.Request) {
	var records []types.PaperRecord
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&records); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON array of paper records: "+err.Error())
		return
	}
	for i, rec := range records {
		if rec.Title == "" && rec.URL == "" {
			writeError(w, http.StatusBadRequest, "record "+strconv.Itoa(i)+" has neither title nor url")
			return
		}
	}

	added, err := s.deps.Library.Save(r.Context(), records)
	if err != nil {
		s.logger.Error().Err(err).Msg("saving to library failed")
		writeError(w, http.StatusInternalServerError, "saving to library failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"added": added, "received": len(records)})
}

// exportLibraryHandler streams the library as CSV.
// GET /api/v1/library/export.csv
func (s *Server) exportLibraryHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.deps.Library.Records(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("exporting library failed")
		writeError(w, http.StatusInternalServerError, "exporting library failed")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="saved_papers.csv"`)
	if err := export.WriteCSV(w, records); err != nil {
		s.logger.Error().Err(err).Msg("writing CSV failed")
	}
}
