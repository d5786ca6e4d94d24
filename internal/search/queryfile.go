// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-finder/pkg/types"
)

// QueryFile is the on-disk representation of a search and its ranked
// results. A saved search can be reloaded and shown again without
// re-querying the sources.
type QueryFile struct {
	Request types.SearchRequest `yaml:"request"`
	Query   string              `yaml:"query"`
	Results []types.RankedPaper `yaml:"results"`
	Summary QuerySummary        `yaml:"summary"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Fetched           int       `yaml:"fetched"`
	Ranked            int       `yaml:"ranked"`
	Dropped           int       `yaml:"dropped"`
	DuplicatesRemoved int       `yaml:"duplicates_removed"`
	SourceErrors      []string  `yaml:"source_errors,omitempty"`
	Timestamp         time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves the request and its output to a YAML file.
func WriteQueryFile(path string, req types.SearchRequest, out SearchOutput) error {
	qf := QueryFile{
		Request: req,
		Query:   out.Query,
		Results: out.Results,
		Summary: QuerySummary{
			Fetched:           out.Fetched,
			Ranked:            len(out.Results),
			Dropped:           out.Dropped,
			DuplicatesRemoved: out.DupsRemoved,
			SourceErrors:      out.SourceErrors,
			Timestamp:         time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Output rebuilds the SearchOutput the file was written from.
func (qf *QueryFile) Output() SearchOutput {
	results := qf.Results
	if results == nil {
		results = []types.RankedPaper{}
	}
	return SearchOutput{
		Query:        qf.Query,
		Results:      results,
		Fetched:      qf.Summary.Fetched,
		Dropped:      qf.Summary.Dropped,
		DupsRemoved:  qf.Summary.DuplicatesRemoved,
		SourceErrors: qf.Summary.SourceErrors,
	}
}
