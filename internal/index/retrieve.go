// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// QueryOptions holds parameters for index queries.
type QueryOptions struct {
	// Query matches point content by case-insensitive substring.
	Query string

	// DocumentID filters by stored document.
	DocumentID string

	// Level filters by outline level. LevelNone matches every level.
	Level types.Level

	// Citation filters to points citing this reference number.
	Citation int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.DocumentID == "" && q.Level == types.LevelNone && q.Citation == 0
}

// QueryResult is one stored outline point with its location.
type QueryResult struct {
	DocumentID    string      `json:"document_id" yaml:"document_id"`
	DocumentTitle string      `json:"document_title" yaml:"document_title"`
	Section       string      `json:"section" yaml:"section"`
	Subsection    string      `json:"subsection" yaml:"subsection"`
	ReferencePath string      `json:"reference_path" yaml:"reference_path"`
	Depth         int         `json:"depth" yaml:"depth"`
	Level         types.Level `json:"level" yaml:"level"`
	Marker        string      `json:"marker" yaml:"marker"`
	Content       string      `json:"content" yaml:"content"`
	Provenance    string      `json:"provenance" yaml:"provenance"`
	Placeholder   bool        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	CitationRefs  []int       `json:"citation_refs,omitempty" yaml:"citation_refs,omitempty"`
}

// Retrieve returns stored outline points matching opts in the order they
// were stored.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT n.document_id, d.title, n.section, n.subsection, n.reference_path,
			n.depth, n.level, n.marker, n.content, n.provenance, n.placeholder, n.citation_refs
		FROM nodes n
		JOIN documents d ON d.id = n.document_id
		WHERE 1=1`)

	if opts.Query != "" {
		qb.WriteString(` AND n.content LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(opts.Query)+"%")
	}

	if opts.DocumentID != "" {
		qb.WriteString(` AND n.document_id = ?`)
		args = append(args, opts.DocumentID)
	}

	if opts.Level != types.LevelNone {
		qb.WriteString(` AND n.level = ?`)
		args = append(args, opts.Level.String())
	}

	if opts.Citation != 0 {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(n.citation_refs) WHERE value = ?)`)
		args = append(args, opts.Citation)
	}

	qb.WriteString(` ORDER BY n.rowid LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr         QueryResult
			title      sql.NullString
			section    sql.NullString
			subsection sql.NullString
			refPath    sql.NullString
			provenance sql.NullString
			refsJSON   sql.NullString
			level      string
		)

		if err := rows.Scan(
			&qr.DocumentID, &title, &section, &subsection, &refPath,
			&qr.Depth, &level, &qr.Marker, &qr.Content, &provenance, &qr.Placeholder, &refsJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		qr.Level, err = types.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("stored point %s in %q: %w", qr.Marker, refPath.String, err)
		}
		qr.DocumentTitle = title.String
		qr.Section = section.String
		qr.Subsection = subsection.String
		qr.ReferencePath = refPath.String
		qr.Provenance = provenance.String
		if refsJSON.Valid {
			json.Unmarshal([]byte(refsJSON.String), &qr.CitationRefs)
		}
		if len(qr.CitationRefs) == 0 {
			qr.CitationRefs = nil
		}

		results = append(results, qr)
	}

	return results, rows.Err()
}

// escapeLike escapes LIKE wildcards so the query matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
