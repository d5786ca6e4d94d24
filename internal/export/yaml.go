// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-finder/pkg/types"
)

// WriteYAML writes records as a YAML list.
func WriteYAML(w io.Writer, records []types.PaperRecord) error {
	if records == nil {
		records = []types.PaperRecord{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// ReadYAML reads a YAML list written by WriteYAML.
func ReadYAML(r io.Reader) ([]types.PaperRecord, error) {
	records := []types.PaperRecord{}
	if err := yaml.NewDecoder(r).Decode(&records); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}
	return records, nil
}
