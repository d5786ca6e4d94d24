// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Messages printed when a search has nothing to show.
const (
	MsgNoPapers   = "No papers found."
	MsgNoScorable = "No papers with titles or summaries found."
)

// FormatTable writes the ranked results as a table to w.
func FormatTable(out SearchOutput, w io.Writer) {
	switch {
	case out.Fetched == 0:
		fmt.Fprintln(w, MsgNoPapers)
		return
	case len(out.Results) == 0:
		fmt.Fprintln(w, MsgNoScorable)
		return
	}

	rows := make([][]string, 0, len(out.Results))
	for _, r := range out.Results {
		rows = append(rows, []string{
			strconv.Itoa(r.Rank),
			truncate(r.Title, 60),
			truncate(r.Authors, 30),
			r.Source,
			fmt.Sprintf("%.3f", r.Score),
			r.URL,
		})
	}
	PrintTable(w, []string{"Rank", "Title", "Authors", "Source", "Score", "URL"}, rows)

	fmt.Fprintf(w, "\n%d results", len(out.Results))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", out.DupsRemoved)
	}
	if out.Dropped > 0 {
		fmt.Fprintf(w, " (%d without title or summary)", out.Dropped)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes the whole output as indented JSON to w.
func FormatJSON(out SearchOutput, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// PrintTable writes rows under header as a borderless, tab-padded table.
func PrintTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
