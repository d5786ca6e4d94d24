// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-finder/internal/export"
	"github.com/pdiddy/paper-finder/internal/search"
	"github.com/pdiddy/paper-finder/pkg/types"
)

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--secrets-dir", filepath.Join(t.TempDir(), "none")))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "paper-finder dev\n", out)
}

func TestKeywordsCommand_JSON(t *testing.T) {
	out, err := execute(t, "keywords", "--json", "large language models in healthcare")
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"large language models", "healthcare"}, got)
}

func TestLibraryImportListExport(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "lib.db")
	csvPath := filepath.Join(dir, "in.csv")

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, []types.PaperRecord{
		{Title: "Attention Is All You Need", Authors: "Ashish Vaswani", Summary: "Transformers.", URL: "http://arxiv.org/abs/1706.03762v5", Source: "ArXiv"},
		{Title: "Deep Residual Learning", Authors: "Kaiming He", Summary: "ResNets.", URL: "https://example.org/resnet", Source: "Semantic Scholar"},
	}))
	require.NoError(t, os.WriteFile(csvPath, buf.Bytes(), 0o644))

	out, err := execute(t, "library", "import", csvPath, "--library", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 of 2 paper(s)")

	out, err = execute(t, "library", "import", csvPath, "--library", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 of 2 paper(s)")

	out, err = execute(t, "library", "list", "--json", "--library", db)
	require.NoError(t, err)
	var saved []types.SavedPaper
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	require.Len(t, saved, 2)

	yamlPath := filepath.Join(dir, "out.yaml")
	_, err = execute(t, "library", "export", "--format", "yaml", "--output", yamlPath, "--library", db)
	require.NoError(t, err)

	f, err := os.Open(yamlPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := export.ReadYAML(f)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLibraryClear_RequiresConfirmation(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")
	_, err := execute(t, "library", "clear", "--library", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestSearchCommand_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	req := types.SearchRequest{Topic: "transformers", Sources: []string{"arxiv"}, Limit: 5}
	require.NoError(t, search.WriteQueryFile(path, req, search.SearchOutput{
		Query: "transformers",
		Results: []types.RankedPaper{{
			PaperRecord: types.PaperRecord{Title: "Attention Is All You Need", Authors: "Ashish Vaswani", Summary: "x", URL: "u", Source: "ArXiv"},
			Rank:        1,
			Score:       0.42,
		}},
		Fetched: 1,
	}))

	out, err := execute(t, "search", "--from-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Attention Is All You Need")
	assert.Contains(t, out, "0.420")
}

func TestSearchCommand_RequiresTopic(t *testing.T) {
	_, err := execute(t, "search", "--from-file", "")
	require.Error(t, err)
}

func TestExporterFor(t *testing.T) {
	for _, format := range []string{"csv", "CSV", "yaml", "yml", "csl"} {
		_, err := exporterFor(format)
		assert.NoError(t, err, format)
	}
	_, err := exporterFor("bibtex")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "bibtex"))
}
