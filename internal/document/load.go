// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document assembles the outline of a whole research document: it
// walks the document once to number its citations, synthesizes every
// subsection's fused responses (in parallel), and maps inline markers onto
// the document-wide reference numbers.
package document

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// Load reads a document from a YAML or JSON file.
func Load(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML or JSON document.
func Parse(data []byte) (*types.Document, error) {
	var doc types.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &doc, nil
}
