// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes search, keyword suggestion and the saved-paper
// library over an HTTP JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-finder/internal/search"
	"github.com/pdiddy/paper-finder/pkg/types"
)

// Searcher runs one search. It is satisfied by *search.Pipeline.
type Searcher interface {
	Run(ctx context.Context, req types.SearchRequest) (search.SearchOutput, error)
}

// Library is the saved-paper store used by the library endpoints. It is
// satisfied by *library.Store.
type Library interface {
	Save(ctx context.Context, records []types.PaperRecord) (int, error)
	List(ctx context.Context) ([]types.SavedPaper, error)
	Find(ctx context.Context, query string) ([]types.SavedPaper, error)
	Records(ctx context.Context) ([]types.PaperRecord, error)
}

// Deps are the collaborators the API serves.
type Deps struct {
	Searcher Searcher
	Library  Library

	// Metrics serves /metrics when non-nil.
	Metrics http.Handler

	// AutoKeywords is how many extracted keywords a search folds into its
	// query when the request selects none.
	AutoKeywords int

	Logger zerolog.Logger
}

// Server is the HTTP API server.
type Server struct {
	deps       Deps
	router     chi.Router
	httpServer *http.Server
	logger     zerolog.Logger
	cfg        types.ServerConfig
}

// New creates a Server listening on cfg.Address once started.
func New(cfg types.ServerConfig, deps Deps) *Server {
	s := &Server{
		deps:   deps,
		cfg:    cfg,
		logger: deps.Logger.With().Str("component", "http-server").Logger(),
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(correlationIDMiddleware)
	r.Use(accessLogMiddleware(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthHandler)
	if s.deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.deps.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.searchHandler)
		r.Get("/keywords", s.keywordsHandler)
		r.Route("/library", func(r chi.Router) {
			r.Get("/", s.listLibraryHandler)
			r.Post("/", s.saveLibraryHandler)
			r.Get("/export.csv", s.exportLibraryHandler)
		})
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info().Str("address", ln.Addr().String()).Msg("HTTP server starting")

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx := context.Background()
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.cfg.ShutdownTimeout)
		defer cancel()
	}
	s.logger.Info().Msg("HTTP server shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	return nil
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
