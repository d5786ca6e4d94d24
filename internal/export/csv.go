// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes paper records to CSV, YAML and CSL-YAML, and reads
// them back from CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-finder/pkg/types"
)

// CSVHeader is the column order of CSV exports.
var CSVHeader = []string{"title", "authors", "summary", "url", "source"}

// WriteCSV writes records as CSV with a header row. Records are written in
// canonical form, since a CSV reader cannot tell a quoted CRLF from LF.
func WriteCSV(w io.Writer, records []types.PaperRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		r = r.Canonical()
		if err := cw.Write([]string{r.Title, r.Authors, r.Summary, r.URL, r.Source}); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads records written by WriteCSV. Columns are matched by header
// name, so reordered files are accepted; a missing column is an error.
func ReadCSV(r io.Reader) ([]types.PaperRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []types.PaperRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range CSVHeader {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("CSV header missing column %q", name)
		}
	}

	records := []types.PaperRecord{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", line, err)
		}
		field := func(name string) string {
			if i := col[name]; i < len(row) {
				return row[i]
			}
			return ""
		}
		records = append(records, types.PaperRecord{
			Title:   field("title"),
			Authors: field("authors"),
			Summary: field("summary"),
			URL:     field("url"),
			Source:  field("source"),
		})
	}
	return records, nil
}
