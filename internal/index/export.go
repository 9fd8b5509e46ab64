// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry holds a stored outline point for export.
type ExportEntry struct {
	DocumentID    string `json:"document_id" yaml:"document_id"`
	DocumentTitle string `json:"document_title,omitempty" yaml:"document_title,omitempty"`
	ReferencePath string `json:"reference_path" yaml:"reference_path"`
	Level         string `json:"level" yaml:"level"`
	Marker        string `json:"marker" yaml:"marker"`
	Content       string `json:"content" yaml:"content"`
	Provenance    string `json:"provenance,omitempty" yaml:"provenance,omitempty"`
	CitationRefs  []int  `json:"citation_refs,omitempty" yaml:"citation_refs,omitempty"`
}

const exportLimit = 100000

// ExportYAML writes matching points to export.yaml in the index directory
// and returns the file's path. It supports the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport("export.yaml", data)
}

// ExportJSON writes matching points to export.json in the index directory
// and returns the file's path. It supports the same filters as Retrieve.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport("export.json", data)
}

func (s *Store) writeExport(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	opts.MaxResults = exportLimit
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(results))
	for i, r := range results {
		entries[i] = ExportEntry{
			DocumentID:    r.DocumentID,
			DocumentTitle: r.DocumentTitle,
			ReferencePath: r.ReferencePath,
			Level:         r.Level.String(),
			Marker:        r.Marker,
			Content:       r.Content,
			Provenance:    r.Provenance,
			CitationRefs:  r.CitationRefs,
		}
	}
	return entries, nil
}
