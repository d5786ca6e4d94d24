// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-finder/internal/export"
	"github.com/pdiddy/paper-finder/internal/library"
	"github.com/pdiddy/paper-finder/internal/search"
	"github.com/pdiddy/paper-finder/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage saved papers",
	Long: `Library manages the papers saved with "search --save". Papers are kept in a
SQLite database (--library, default paper-finder.db) and can be listed,
searched, removed, exported and imported.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved papers, newest first",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryFindCmd = &cobra.Command{
	Use:   "find <query...>",
	Short: "Rank saved papers against a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryFind,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <id...>",
	Short: "Remove saved papers by id",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryRemove,
}

var libraryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved paper",
	Args:  cobra.NoArgs,
	RunE:  runLibraryClear,
}

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved papers as CSV, YAML or CSL-YAML",
	Example: `  paper-finder library export --format csv --output papers.csv
  paper-finder library export --format csl > references.yaml`,
	Args: cobra.NoArgs,
	RunE: runLibraryExport,
}

var libraryImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import papers from a CSV or YAML export",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryImport,
}

func init() {
	libraryListCmd.Flags().Bool("json", false, "output as JSON")
	libraryFindCmd.Flags().Bool("json", false, "output as JSON")
	libraryClearCmd.Flags().Bool("yes", false, "confirm removing every saved paper")
	libraryExportCmd.Flags().String("format", "csv", "export format: csv, yaml, csl")
	libraryExportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	libraryCmd.AddCommand(libraryListCmd, libraryFindCmd, libraryRemoveCmd,
		libraryClearCmd, libraryExportCmd, libraryImportCmd)
	rootCmd.AddCommand(libraryCmd)
}

func openLibrary() (*library.Store, error) {
	return library.Open(cfg.Library)
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	papers, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	return printSaved(cmd, papers)
}

func runLibraryFind(cmd *cobra.Command, args []string) error {
	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	papers, err := store.Find(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	return printSaved(cmd, papers)
}

func printSaved(cmd *cobra.Command, papers []types.SavedPaper) error {
	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSONTo(out, papers)
	}

	if len(papers) == 0 {
		fmt.Fprintln(out, "No saved papers.")
		return nil
	}

	rows := make([][]string, len(papers))
	for i, p := range papers {
		rows[i] = []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			p.Authors,
			p.Source,
			p.SavedAt.Local().Format("2006-01-02"),
		}
	}
	search.PrintTable(out, []string{"ID", "Title", "Authors", "Source", "Saved"}, rows)
	fmt.Fprintf(out, "\n%d saved paper(s)\n", len(papers))
	return nil
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	ids := make([]int64, len(args))
	for i, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", a)
		}
		ids[i] = id
	}

	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, id := range ids {
		if err := store.Remove(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d\n", id)
	}
	return nil
}

func runLibraryClear(cmd *cobra.Command, _ []string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		return fmt.Errorf("refusing to clear the library without --yes")
	}

	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d saved paper(s)\n", n)
	return nil
}

func runLibraryExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	write, err := exporterFor(format)
	if err != nil {
		return err
	}

	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Records(cmd.Context())
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return write(cmd.OutOrStdout(), records)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d paper(s) to %s\n", len(records), path)
	return nil
}

func exporterFor(format string) (func(io.Writer, []types.PaperRecord) error, error) {
	switch strings.ToLower(format) {
	case "csv":
		return export.WriteCSV, nil
	case "yaml", "yml":
		return export.WriteYAML, nil
	case "csl":
		return export.WriteCSL, nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want csv, yaml or csl)", format)
	}
}

func runLibraryImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var records []types.PaperRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		records, err = export.ReadYAML(f)
	default:
		records, err = export.ReadCSV(f)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	added, err := store.Save(cmd.Context(), records)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d paper(s)\n", added, len(records))
	return nil
}

func writeJSONTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
