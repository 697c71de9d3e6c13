// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"github.com/pdiddy/citematch/internal/analysis"
	"github.com/pdiddy/citematch/pkg/types"
)

// MemoryIndex is an in-memory inverted index from term to the positions of
// the records whose key contains it. Posting lists are sorted ascending.
type MemoryIndex struct {
	analyzer analysis.Analyzer
	records  []*types.Record
	postings map[string][]int
}

// LoadMemory builds a MemoryIndex over records.
func LoadMemory(records []types.Record, a analysis.Analyzer, key KeyFunc) (*MemoryIndex, error) {
	if err := checkLoadArgs(types.BackendMemory, a, key); err != nil {
		return nil, err
	}
	m := &MemoryIndex{
		analyzer: a,
		records:  make([]*types.Record, len(records)),
		postings: make(map[string][]int),
	}
	for i := range records {
		r := &records[i]
		m.records[i] = r
		for _, term := range a.Analyze(key(r)) {
			m.postings[term] = append(m.postings[term], i)
		}
	}
	return m, nil
}

// Match intersects the posting lists of the query terms.
func (m *MemoryIndex) Match(query string) ([]*types.Record, error) {
	terms := m.analyzer.Analyze(query)
	if len(terms) == 0 {
		return nil, nil
	}

	hits := m.postings[terms[0]]
	for _, term := range terms[1:] {
		if len(hits) == 0 {
			break
		}
		hits = intersect(hits, m.postings[term])
	}

	if len(hits) == 0 {
		return nil, nil
	}
	out := make([]*types.Record, len(hits))
	for i, pos := range hits {
		out[i] = m.records[pos]
	}
	return out, nil
}

// Len returns the number of indexed records.
func (m *MemoryIndex) Len() int {
	return len(m.records)
}

// intersect merges two ascending posting lists into a new slice.
func intersect(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
