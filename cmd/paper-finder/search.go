// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-finder/internal/export"
	"github.com/pdiddy/paper-finder/internal/keywords"
	"github.com/pdiddy/paper-finder/internal/library"
	"github.com/pdiddy/paper-finder/internal/search"
	"github.com/pdiddy/paper-finder/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [topic...]",
	Short: "Search paper sources and rank the results",
	Long: `Search sends one query to every enabled source (arXiv, Semantic Scholar,
the ResearchGate placeholder and optionally OpenAlex), combines the results
and ranks them by TF-IDF cosine similarity to the query.

Unless --keyword is given, the first --auto-keywords extracted keywords are
appended to the topic. A source that fails is reported and skipped.`,
	Example: `  paper-finder search quantum computing
  paper-finder search "graph neural networks" --source arxiv --limit 20 --author Kipf
  paper-finder search transformers --keyword attention --json
  paper-finder search protein folding --save 1,3`,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringSlice("source", nil, "sources to query: arxiv, semanticscholar, researchgate, openalex (default from config)")
	f.Int("limit", 0, "results per source (default from config, 10)")
	f.StringSlice("keyword", nil, "refinement keyword appended to the query (repeatable)")
	f.Int("auto-keywords", -1, "number of extracted keywords to append when no --keyword is given (default from config, 2)")
	f.String("author", "", "author filter, appended as author:<name>")
	f.String("year", "", "year filter, appended as year:<year>")
	f.Bool("json", false, "output results as JSON")
	f.Bool("csl", false, "output results as CSL-YAML")
	f.Bool("dedupe", false, "merge records sharing a URL or normalized title")
	f.IntSlice("save", nil, "save the results at these ranks to the library")
	f.Bool("save-all", false, "save every ranked result to the library")
	f.String("output", "", "also write the search and its results to this YAML file")
	f.String("from-file", "", "show a search saved with --output instead of querying sources")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	var (
		req    types.SearchRequest
		result search.SearchOutput
	)

	if path, _ := cmd.Flags().GetString("from-file"); path != "" {
		qf, err := search.ReadQueryFile(path)
		if err != nil {
			return err
		}
		req, result = qf.Request, qf.Output()
	} else {
		var err error
		req, err = searchRequestFromFlags(cmd, args)
		if err != nil {
			return err
		}

		scfg := cfg.Search
		if cmd.Flags().Changed("dedupe") {
			scfg.Dedupe, _ = cmd.Flags().GetBool("dedupe")
		}
		pipeline := search.NewPipeline(scfg, logger, nil)

		result, err = pipeline.Run(cmd.Context(), req)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(errOut, "Query: %s\n", result.Query)
	for _, msg := range result.SourceErrors {
		fmt.Fprintf(errOut, "warning: source %s\n", msg)
	}

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := search.WriteQueryFile(path, req, result); err != nil {
			return err
		}
		fmt.Fprintf(errOut, "Saved search to %s\n", path)
	}

	if err := writeSearchOutput(cmd, out, result); err != nil {
		return err
	}
	return saveRanked(cmd, result)
}

// searchRequestFromFlags builds the SearchRequest for a live search.
func searchRequestFromFlags(cmd *cobra.Command, args []string) (types.SearchRequest, error) {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return types.SearchRequest{}, fmt.Errorf("provide a research topic")
	}

	f := cmd.Flags()
	sources, _ := f.GetStringSlice("source")
	limit, _ := f.GetInt("limit")
	kws, _ := f.GetStringSlice("keyword")
	author, _ := f.GetString("author")
	year, _ := f.GetString("year")

	if len(kws) == 0 {
		n, _ := f.GetInt("auto-keywords")
		if n < 0 {
			n = cfg.Search.AutoKeywords
		}
		kws = keywords.Select(keywords.Extract(topic), n)
	}

	return types.SearchRequest{
		Topic:    topic,
		Sources:  sources,
		Limit:    limit,
		Keywords: kws,
		Author:   author,
		Year:     year,
	}, nil
}

func writeSearchOutput(cmd *cobra.Command, w io.Writer, result search.SearchOutput) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	asCSL, _ := cmd.Flags().GetBool("csl")

	switch {
	case asJSON:
		return search.FormatJSON(result, w)
	case asCSL:
		return export.WriteCSL(w, rankedRecords(result.Results))
	default:
		search.FormatTable(result, w)
		return nil
	}
}

// saveRanked stores the results selected with --save or --save-all.
func saveRanked(cmd *cobra.Command, result search.SearchOutput) error {
	all, _ := cmd.Flags().GetBool("save-all")
	ranks, _ := cmd.Flags().GetIntSlice("save")
	if !all && len(ranks) == 0 {
		return nil
	}

	var selected []types.PaperRecord
	if all {
		selected = rankedRecords(result.Results)
	} else {
		sort.Ints(ranks)
		for _, r := range ranks {
			if r < 1 || r > len(result.Results) {
				return fmt.Errorf("--save rank %d out of range (1-%d)", r, len(result.Results))
			}
			selected = append(selected, result.Results[r-1].PaperRecord)
		}
	}

	store, err := library.Open(cfg.Library)
	if err != nil {
		return err
	}
	defer store.Close()

	added, err := store.Save(cmd.Context(), selected)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d paper(s) to %s (%d already saved)\n",
		added, cfg.Library.Path, len(selected)-added)
	return nil
}

func rankedRecords(ranked []types.RankedPaper) []types.PaperRecord {
	records := make([]types.PaperRecord, len(ranked))
	for i, r := range ranked {
		records[i] = r.PaperRecord
	}
	return records
}
