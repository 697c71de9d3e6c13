// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index provides fuzzy lookup from a query string to bibliography
// records. Each record is indexed under the analyzed terms of one key
// string; a query matches every record whose key contains all of the
// query's terms, in any order.
package index

import (
	"fmt"

	"github.com/pdiddy/citematch/internal/analysis"
	"github.com/pdiddy/citematch/pkg/types"
)

// Index is a read-only record lookup. Implementations are safe for
// concurrent Match calls once loaded.
type Index interface {
	// Match returns the records whose key contains every term of query, in
	// collection order. A query without terms matches nothing.
	Match(query string) ([]*types.Record, error)

	// Len returns the number of indexed records.
	Len() int
}

// KeyFunc extracts the string a record is indexed under.
type KeyFunc func(r *types.Record) string

// AuthorKey indexes a record by its author string, "et al" and the year,
// so that "Smith et al., 1990" and "Smith, 1990" both find it.
func AuthorKey(r *types.Record) string {
	key := r.Authors + " et al"
	if r.Year != "" {
		key += " " + r.Year
	}
	return key
}

// LabelKey indexes a record by its reference label.
func LabelKey(r *types.Record) string {
	return r.Label
}

// BuildError reports that an index could not be constructed.
type BuildError struct {
	Backend types.IndexBackend
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("building %s index: %v", e.Backend, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Load builds an index of the given backend over records. The returned
// index references records by pointer into the records slice, which must
// not be modified afterwards.
func Load(backend types.IndexBackend, records []types.Record, a analysis.Analyzer, key KeyFunc) (Index, error) {
	switch backend {
	case types.BackendMemory, "":
		return LoadMemory(records, a, key)
	case types.BackendSQLite:
		return LoadSQLite(records, a, key)
	default:
		return nil, &BuildError{Backend: backend, Err: fmt.Errorf("unknown index backend %q", backend)}
	}
}

func checkLoadArgs(backend types.IndexBackend, a analysis.Analyzer, key KeyFunc) error {
	if a == nil {
		return &BuildError{Backend: backend, Err: fmt.Errorf("no analyzer")}
	}
	if key == nil {
		return &BuildError{Backend: backend, Err: fmt.Errorf("no key function")}
	}
	return nil
}
