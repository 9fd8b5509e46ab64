// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index persists assembled document outlines in SQLite so their
// points can be searched and filtered after the session that built them.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/outline-engine/pkg/types"
)

const (
	dbFile            = "outlines.db"
	defaultMaxResults = 20
)

// Store manages the outline index database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	logger     *zap.Logger
}

// NewStore opens or creates the index database at cfg.Dir/outlines.db and
// creates the schema if it does not exist. A nil logger discards output.
func NewStore(cfg types.IndexConfig, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		maxResults: maxResults,
		logger:     logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT,
			stored_at TEXT NOT NULL,
			sections INTEGER,
			points INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS refs (
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			number INTEGER NOT NULL,
			label TEXT NOT NULL,
			citation TEXT NOT NULL,
			PRIMARY KEY (document_id, number)
		)`,
		`CREATE TABLE IF NOT EXISTS nodes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			section TEXT,
			subsection TEXT,
			reference_path TEXT,
			depth INTEGER NOT NULL,
			level TEXT NOT NULL,
			marker TEXT NOT NULL,
			content TEXT NOT NULL,
			provenance TEXT,
			placeholder INTEGER NOT NULL DEFAULT 0,
			citation_refs TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_document_id ON nodes(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_level ON nodes(level)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Put stores out under a new document ID and returns the ID. Every outline
// point is stored as its own row, in tree order.
func (s *Store) Put(ctx context.Context, out *types.DocumentOutline) (string, error) {
	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	points := 0
	for _, sec := range out.Sections {
		for _, sub := range sec.Subsections {
			points += sub.Points.Count()
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, title, stored_at, sections, points) VALUES (?, ?, ?, ?, ?)`,
		id, out.Title, time.Now().UTC().Format(time.RFC3339Nano), len(out.Sections), points,
	)
	if err != nil {
		return "", fmt.Errorf("inserting document: %w", err)
	}

	refStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO refs (document_id, number, label, citation) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing reference insert: %w", err)
	}
	defer refStmt.Close()

	for _, r := range out.References {
		citationJSON, err := json.Marshal(r.Citation)
		if err != nil {
			return "", fmt.Errorf("encoding reference %d: %w", r.Number, err)
		}
		if _, err := refStmt.ExecContext(ctx, id, r.Number, r.Citation.Label(), string(citationJSON)); err != nil {
			return "", fmt.Errorf("inserting reference %d: %w", r.Number, err)
		}
	}

	nodeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO nodes (document_id, section, subsection, reference_path, depth, level, marker, content, provenance, placeholder, citation_refs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing node insert: %w", err)
	}
	defer nodeStmt.Close()

	for _, sec := range out.Sections {
		for _, sub := range sec.Subsections {
			var insertErr error
			sub.Points.Walk(func(n *types.OutlineNode, depth int) bool {
				refsJSON, err := json.Marshal(refsOrEmpty(n.CitationRefs))
				if err != nil {
					insertErr = fmt.Errorf("encoding citation refs: %w", err)
					return false
				}
				_, insertErr = nodeStmt.ExecContext(ctx,
					id, sec.Title, sub.Title, sub.ReferencePath, depth,
					n.Level.String(), n.Marker, n.Content, n.Provenance, n.Placeholder,
					string(refsJSON),
				)
				return insertErr == nil
			})
			if insertErr != nil {
				return "", fmt.Errorf("inserting outline point in %s: %w", sub.ReferencePath, insertErr)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing document: %w", err)
	}

	s.logger.Debug("stored outline",
		zap.String("id", id),
		zap.String("title", out.Title),
		zap.Int("points", points),
		zap.Int("references", len(out.References)),
	)
	return id, nil
}

// DocumentInfo summarizes one stored document.
type DocumentInfo struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	StoredAt time.Time `json:"stored_at" yaml:"stored_at"`
	Sections int       `json:"sections" yaml:"sections"`
	Points   int       `json:"points" yaml:"points"`
}

// Documents lists stored documents, oldest first.
func (s *Store) Documents(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, stored_at, sections, points FROM documents ORDER BY stored_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentInfo
	for rows.Next() {
		var (
			d        DocumentInfo
			title    sql.NullString
			storedAt string
		)
		if err := rows.Scan(&d.ID, &title, &storedAt, &d.Sections, &d.Points); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		d.Title = title.String
		d.StoredAt, _ = time.Parse(time.RFC3339Nano, storedAt)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// References returns the reference list stored with a document, in
// reference-number order.
func (s *Store) References(ctx context.Context, documentID string) ([]types.Reference, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT number, citation FROM refs WHERE document_id = ? ORDER BY number`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying references: %w", err)
	}
	defer rows.Close()

	var refs []types.Reference
	for rows.Next() {
		var (
			r            types.Reference
			citationJSON string
		)
		if err := rows.Scan(&r.Number, &citationJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(citationJSON), &r.Citation); err != nil {
			return nil, fmt.Errorf("decoding reference %d: %w", r.Number, err)
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

func refsOrEmpty(refs []int) []int {
	if refs == nil {
		return []int{}
	}
	return refs
}
