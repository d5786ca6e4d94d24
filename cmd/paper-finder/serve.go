// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-finder/internal/keywords"
	"github.com/pdiddy/paper-finder/internal/library"
	"github.com/pdiddy/paper-finder/internal/observability"
	"github.com/pdiddy/paper-finder/internal/search"
	"github.com/pdiddy/paper-finder/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search, keyword and library API over HTTP",
	Long: `Serve starts an HTTP server exposing search, keyword suggestion and the
saved-paper library as JSON endpoints under /api/v1, plus /healthz and
Prometheus metrics on /metrics. It shuts down gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("address", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	scfg := cfg.Server
	if addr, _ := cmd.Flags().GetString("address"); addr != "" {
		scfg.Address = addr
	}

	if err := keywords.Warm(); err != nil {
		return err
	}

	store, err := library.Open(cfg.Library)
	if err != nil {
		return err
	}
	defer store.Close()

	metrics := observability.NewMetrics()
	pipeline := search.NewPipeline(cfg.Search, logger, metrics)

	srv := server.New(scfg, server.Deps{
		Searcher:     pipeline,
		Library:      store,
		Metrics:      metrics.Handler(),
		AutoKeywords: cfg.Search.AutoKeywords,
		Logger:       logger,
	})

	logger.Info().
		Str("address", scfg.Address).
		Str("library", cfg.Library.Path).
		Strs("sources", cfg.Search.Sources).
		Msg("starting server")
	return srv.ListenAndServe(cmd.Context())
}
