package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteJSON encodes records as an {"items": [...]} document and writes it
// to w. The output can be re-read with [ReadJSON].
func WriteJSON(recs []Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Items: nonNil(recs)}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes records as an items document in YAML.
func WriteYAML(recs []Record, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Items: nonNil(recs)}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ExportFile writes records to path, choosing the encoding with [FormatFor].
func ExportFile(recs []Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if FormatFor(path) == FormatYAML {
		return WriteYAML(recs, f)
	}
	return WriteJSON(recs, f)
}

func nonNil(recs []Record) []Record {
	if recs == nil {
		return []Record{}
	}
	return recs
}
