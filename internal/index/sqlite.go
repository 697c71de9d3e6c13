// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/citematch/internal/analysis"
	"github.com/pdiddy/citematch/pkg/types"
)

// SQLiteIndex keeps the term postings in a private in-memory SQLite
// database. It answers the same queries as MemoryIndex.
type SQLiteIndex struct {
	db       *sql.DB
	analyzer analysis.Analyzer
	records  []*types.Record
}

// LoadSQLite builds a SQLiteIndex over records.
func LoadSQLite(records []types.Record, a analysis.Analyzer, key KeyFunc) (*SQLiteIndex, error) {
	if err := checkLoadArgs(types.BackendSQLite, a, key); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, &BuildError{Backend: types.BackendSQLite, Err: fmt.Errorf("opening database: %w", err)}
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	s := &SQLiteIndex{
		db:       db,
		analyzer: a,
		records:  make([]*types.Record, len(records)),
	}
	for i := range records {
		s.records[i] = &records[i]
	}

	if err := s.build(key); err != nil {
		db.Close()
		return nil, &BuildError{Backend: types.BackendSQLite, Err: err}
	}
	return s, nil
}

func (s *SQLiteIndex) build(key KeyFunc) error {
	if _, err := s.db.Exec(`CREATE TABLE terms (
		term TEXT NOT NULL,
		rec INTEGER NOT NULL,
		PRIMARY KEY (term, rec)
	)`); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO terms (term, rec) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range s.records {
		for _, term := range s.analyzer.Analyze(key(r)) {
			if _, err := stmt.Exec(term, i); err != nil {
				return fmt.Errorf("inserting term %q: %w", term, err)
			}
		}
	}
	return tx.Commit()
}

// Match returns the records holding all query terms.
func (s *SQLiteIndex) Match(query string) ([]*types.Record, error) {
	terms := s.analyzer.Analyze(query)
	if len(terms) == 0 {
		return nil, nil
	}

	args := make([]any, 0, len(terms)+1)
	for _, term := range terms {
		args = append(args, term)
	}
	args = append(args, len(terms))

	q := `SELECT rec FROM terms WHERE term IN (?` + strings.Repeat(`, ?`, len(terms)-1) + `)
		GROUP BY rec HAVING COUNT(DISTINCT term) = ? ORDER BY rec`

	rows, err := s.db.QueryContext(context.Background(), q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying terms: %w", err)
	}
	defer rows.Close()

	var out []*types.Record
	for rows.Next() {
		var pos int
		if err := rows.Scan(&pos); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, s.records[pos])
	}
	return out, rows.Err()
}

// Len returns the number of indexed records.
func (s *SQLiteIndex) Len() int {
	return len(s.records)
}

// Close releases the database.
func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}
