// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-finder/internal/keywords"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords [topic...]",
	Short: "Suggest refinement keywords for a topic",
	Long: `Keywords splits the topic into sentences and breaks each sentence into
phrase candidates at stopwords and punctuation. Candidates are printed in
order of first appearance; the first ones are what "search" appends
automatically.`,
	Example: `  paper-finder keywords "machine learning for drug discovery"
  paper-finder keywords --json "quantum error correction"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKeywords,
}

func init() {
	keywordsCmd.Flags().Bool("json", false, "output candidates as a JSON array")
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	candidates := keywords.Extract(topic)

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSONTo(out, candidates)
	}

	if len(candidates) == 0 {
		fmt.Fprintln(out, "No keyword candidates found.")
		return nil
	}
	for i, c := range candidates {
		fmt.Fprintf(out, "%d. %s\n", i+1, c)
	}
	return nil
}
