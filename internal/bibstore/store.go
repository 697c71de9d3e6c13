// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibstore persists per-document bibliography record collections in
// SQLite so that markers can be matched against a document's records
// without re-reading its source files.
package bibstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citematch/pkg/types"
)

const (
	recordsDir = "records"
	indexDir   = "index"
	dbFile     = "records.db"
)

var (
	// ErrUnknownDocument is returned when a document has no stored records.
	ErrUnknownDocument = errors.New("unknown document")

	// ErrInvalidDocument is returned for document IDs that cannot name an
	// export file inside the store.
	ErrInvalidDocument = errors.New("invalid document ID")
)

// ValidateDocumentID rejects empty IDs, "." and "..", and IDs containing a
// path separator.
func ValidateDocumentID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidDocument, id)
	}
	return nil
}

// Store manages the bibliography SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates the database at dir/index/records.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.Dir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: cfg.Dir}
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
			source_path TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			label TEXT,
			authors TEXT,
			year TEXT,
			raw_text TEXT NOT NULL,
			UNIQUE (document_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_document_id ON records(document_id)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			source_path TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from an ingest run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads bibliography YAML files from dir/records/ and stores their
// records. Files whose modification time is unchanged since the last run
// are skipped; changed files replace the document's records.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	srcDir := filepath.Join(s.dir, recordsDir)

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading records directory %s: %w", srcDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		path := filepath.Join(srcDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM ingest_status WHERE source_path = ?`, path,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", entry.Name())
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		bib, err := ReadBibliography(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}
		if bib.Document == "" {
			bib.Document = strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		}

		if err := s.Put(ctx, bib, path, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d records)\n", bib.Document, len(bib.Records))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d records)\n", bib.Document, len(bib.Records))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

// Put replaces the stored records of bib.Document in one transaction and
// records the source file's modification time.
func (s *Store) Put(ctx context.Context, bib *types.BibliographyFile, sourcePath, modTime string) error {
	if err := ValidateDocumentID(bib.Document); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE document_id = ?`, bib.Document); err != nil {
		return fmt.Errorf("deleting old records: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, source_path) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET source_path=excluded.source_path`,
		bib.Document, sourcePath,
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (document_id, position, label, authors, year, raw_text)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range bib.Records {
		if _, err := stmt.ExecContext(ctx, bib.Document, i, r.Label, r.Authors, r.Year, r.RawText); err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	if sourcePath != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO ingest_status (source_path, file_mod_time) VALUES (?, ?)
			 ON CONFLICT(source_path) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
			sourcePath, modTime,
		)
		if err != nil {
			return fmt.Errorf("updating ingest status: %w", err)
		}
	}

	return tx.Commit()
}

// Records returns the stored records of a document in reference-list order.
func (s *Store) Records(ctx context.Context, docID string) ([]types.Record, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM documents WHERE id = ?`, docID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("looking up document: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, docID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT label, authors, year, raw_text FROM records
		 WHERE document_id = ? ORDER BY position`, docID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var (
			r                    types.Record
			label, authors, year sql.NullString
		)
		if err := rows.Scan(&label, &authors, &year, &r.RawText); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Label = label.String
		r.Authors = authors.String
		r.Year = year.String
		records = append(records, r)
	}
	return records, rows.Err()
}

// DocumentInfo summarizes one stored document.
type DocumentInfo struct {
	ID      string `json:"id" yaml:"id"`
	Records int    `json:"records" yaml:"records"`
}

// Documents lists stored documents ordered by ID.
func (s *Store) Documents(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, count(r.rowid) FROM documents d
		 LEFT JOIN records r ON r.document_id = d.id
		 GROUP BY d.id ORDER BY d.id`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentInfo
	for rows.Next() {
		var d DocumentInfo
		if err := rows.Scan(&d.ID, &d.Records); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// ReadBibliography parses a bibliography YAML file.
func ReadBibliography(path string) (*types.BibliographyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bib types.BibliographyFile
	if err := yaml.Unmarshal(data, &bib); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return &bib, nil
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
