// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "index")
	store, err := NewStore(types.IndexConfig{Dir: dir, MaxResults: 20}, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func sampleOutline() *types.DocumentOutline {
	return &types.DocumentOutline{
		Title: "Renewables",
		Sections: []types.SectionOutline{{
			Label: "I",
			Title: "Energy",
			Subsections: []types.SubsectionOutline{{
				Label:         "A",
				Title:         "Solar",
				ReferencePath: "Section I → Subsection A",
				Points: types.OutlineTree{
					{
						Level:        types.LevelNumeric,
						Marker:       "1.",
						Content:      "Adoption grew 40% [1]",
						CitationRefs: []int{1},
						Provenance:   "Research Question 1: How fast?",
						Children: []*types.OutlineNode{{
							Level:        types.LevelLowercase,
							Marker:       "a.",
							Content:      "Capacity_doubled in 100% of regions [2]",
							CitationRefs: []int{1, 2},
							Provenance:   "Supporting evidence from literature",
						}},
					},
					{
						Level:       types.LevelNumeric,
						Marker:      "2.",
						Content:     "No content available",
						Placeholder: true,
						Provenance:  "Research Question 2: Why?",
					},
				},
			}},
		}},
		References: []types.Reference{
			{Number: 1, Citation: types.Citation{Title: "Alpha", MethodologyPoints: []string{"survey"}}},
			{Number: 2, Citation: types.Citation{APA: "Beta, B. (2021)."}},
		},
	}
}

func putSample(t *testing.T, s *Store) string {
	t.Helper()
	id, err := s.Put(context.Background(), sampleOutline())
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("Put returned empty id")
	}
	return id
}

// --- tests ---

func TestNewStoreCreatesDatabase(t *testing.T) {
	_, dir := testStore(t)
	if _, err := os.Stat(filepath.Join(dir, dbFile)); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
}

func TestPutAndDocuments(t *testing.T) {
	s, _ := testStore(t)
	first := putSample(t, s)
	second := putSample(t, s)
	if first == second {
		t.Fatal("document ids must be unique")
	}

	docs, err := s.Documents(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].Title != "Renewables" || docs[0].Sections != 1 || docs[0].Points != 3 {
		t.Errorf("unexpected document info: %+v", docs[0])
	}
	if docs[0].StoredAt.IsZero() {
		t.Error("stored_at not recorded")
	}
}

func TestReferences(t *testing.T) {
	s, _ := testStore(t)
	id := putSample(t, s)

	refs, err := s.References(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 {
		t.Fatalf("got %d references, want 2", len(refs))
	}
	if refs[0].Number != 1 || refs[0].Citation.Title != "Alpha" {
		t.Errorf("refs[0] = %+v", refs[0])
	}
	if len(refs[0].Citation.MethodologyPoints) != 1 {
		t.Errorf("methodology points lost: %+v", refs[0].Citation)
	}
	if refs[1].Citation.APA != "Beta, B. (2021)." {
		t.Errorf("refs[1] = %+v", refs[1])
	}

	none, err := s.References(context.Background(), "missing")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("got %d references for unknown document", len(none))
	}
}

func TestRetrieve(t *testing.T) {
	s, _ := testStore(t)
	id := putSample(t, s)
	other := putSample(t, s)

	tests := []struct {
		name     string
		opts     QueryOptions
		wantLen  int
		wantMark string
	}{
		{"all points of one document", QueryOptions{DocumentID: id}, 3, "1."},
		{"substring match is case insensitive", QueryOptions{DocumentID: id, Query: "ADOPTION"}, 1, "1."},
		{"percent matched literally", QueryOptions{DocumentID: id, Query: "100%"}, 1, "a."},
		{"underscore matched literally", QueryOptions{DocumentID: id, Query: "y_d"}, 1, "a."},
		{"wildcards do not match freely", QueryOptions{DocumentID: id, Query: "Adoption_grew"}, 0, ""},
		{"level filter", QueryOptions{DocumentID: id, Level: types.LevelLowercase}, 1, "a."},
		{"citation filter", QueryOptions{DocumentID: id, Citation: 2}, 1, "a."},
		{"citation shared by two points", QueryOptions{DocumentID: id, Citation: 1}, 2, "1."},
		{"across documents", QueryOptions{Level: types.LevelNumeric}, 4, "1."},
		{"max results", QueryOptions{MaxResults: 2}, 2, "1."},
		{"other document", QueryOptions{DocumentID: other, Query: "content available"}, 1, "2."},
		{"no match", QueryOptions{Query: "wind"}, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.Retrieve(context.Background(), tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(results) != tt.wantLen {
				t.Fatalf("got %d results, want %d", len(results), tt.wantLen)
			}
			if tt.wantLen > 0 && results[0].Marker != tt.wantMark {
				t.Errorf("first marker = %q, want %q", results[0].Marker, tt.wantMark)
			}
		})
	}
}

func TestRetrieveResultFields(t *testing.T) {
	s, _ := testStore(t)
	id := putSample(t, s)

	results, err := s.Retrieve(context.Background(), QueryOptions{DocumentID: id})
	if err != nil {
		t.Fatal(err)
	}

	child := results[1]
	if child.DocumentTitle != "Renewables" || child.Section != "Energy" || child.Subsection != "Solar" {
		t.Errorf("location not stored: %+v", child)
	}
	if child.ReferencePath != "Section I → Subsection A" {
		t.Errorf("reference path = %q", child.ReferencePath)
	}
	if child.Depth != 1 || child.Level != types.LevelLowercase {
		t.Errorf("depth/level = %d/%s", child.Depth, child.Level)
	}
	if len(child.CitationRefs) != 2 || child.CitationRefs[1] != 2 {
		t.Errorf("citation refs = %v", child.CitationRefs)
	}

	placeholder := results[2]
	if !placeholder.Placeholder {
		t.Error("placeholder flag not stored")
	}
	if placeholder.CitationRefs != nil {
		t.Errorf("placeholder refs = %v, want nil", placeholder.CitationRefs)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "index")
	s, err := NewStore(types.IndexConfig{Dir: dir}, nil)
	if err != nil {
		t.Fatal(err)
	}
	id := putSample(t, s)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewStore(types.IndexConfig{Dir: dir}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	results, err := reopened.Retrieve(context.Background(), QueryOptions{DocumentID: id})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results after reopen, want 3", len(results))
	}
}

func TestExportYAML(t *testing.T) {
	s, dir := testStore(t)
	id := putSample(t, s)

	path, err := s.ExportYAML(context.Background(), QueryOptions{DocumentID: id, Level: types.LevelNumeric})
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "export.yaml") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ExportEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Level != "numeric" || entries[0].Content != "Adoption grew 40% [1]" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
}

func TestExportJSON(t *testing.T) {
	s, _ := testStore(t)
	putSample(t, s)

	path, err := s.ExportJSON(context.Background(), QueryOptions{Citation: 2})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ExportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Marker != "a." {
		t.Errorf("entries = %+v", entries)
	}
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	if !(QueryOptions{MaxResults: 5}).IsEmpty() {
		t.Error("MaxResults alone is not a filter")
	}
	if (QueryOptions{Citation: 1}).IsEmpty() {
		t.Error("citation filter reported empty")
	}
}
