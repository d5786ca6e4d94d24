// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-finder/internal/textnorm"
	"github.com/pdiddy/paper-finder/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Title    string    `yaml:"title"`
	Author   []CSLName `yaml:"author,omitempty"`
	Abstract string    `yaml:"abstract,omitempty"`
	URL      string    `yaml:"URL,omitempty"`
	DOI      string    `yaml:"DOI,omitempty"`
	Source   string    `yaml:"source,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// WriteCSL writes records as a CSL-YAML list to w.
func WriteCSL(w io.Writer, records []types.PaperRecord) error {
	items := make([]CSLItem, len(records))
	used := make(map[string]int)
	for i, r := range records {
		items[i] = ToCSLItem(r)
		items[i].ID = uniqueID(items[i].ID, used)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding CSL: %w", err)
	}
	return enc.Close()
}

// ToCSLItem converts a PaperRecord to a CSLItem. Placeholder fields are
// left out.
func ToCSLItem(r types.PaperRecord) CSLItem {
	item := CSLItem{
		Type:   "article",
		Title:  r.Title,
		Source: r.Source,
	}
	if r.Summary != types.DefaultSummary {
		item.Abstract = r.Summary
	}
	if r.URL != types.DefaultURL {
		item.URL = r.URL
	}
	if i := strings.Index(r.URL, "doi.org/"); i >= 0 {
		item.DOI = r.URL[i+len("doi.org/"):]
	}

	if r.Authors != types.DefaultAuthors && r.Authors != "N/A" {
		for _, a := range strings.Split(r.Authors, ", ") {
			if name := parseAuthorName(a); name != (CSLName{}) {
				item.Author = append(item.Author, name)
			}
		}
	}

	item.ID = citeKey(item)
	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

// citeKey builds a key from the first author's family name and the first
// title word, e.g. "vaswani-attention".
func citeKey(item CSLItem) string {
	var parts []string
	if len(item.Author) > 0 {
		name := item.Author[0].Family
		if name == "" {
			name = item.Author[0].Literal
		}
		if f := strings.Fields(textnorm.Normalize(name)); len(f) > 0 {
			parts = append(parts, f[len(f)-1])
		}
	}
	if f := strings.Fields(textnorm.Normalize(item.Title)); len(f) > 0 {
		parts = append(parts, f[0])
	}
	if len(parts) == 0 {
		return "item"
	}
	return strings.Join(parts, "-")
}

// uniqueID returns id, suffixed with a counter when it was already used.
func uniqueID(id string, used map[string]int) string {
	used[id]++
	if n := used[id]; n > 1 {
		return fmt.Sprintf("%s-%d", id, n)
	}
	return id
}
