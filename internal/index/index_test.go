// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citematch/internal/analysis"
	"github.com/pdiddy/citematch/pkg/types"
)

func sampleRecords() []types.Record {
	return []types.Record{
		{RawText: "Kuwajima K, Nitta K. Biochemistry 1985", Label: "1", Authors: "Kuwajima Nitta", Year: "1985"},
		{RawText: "Creighton TE. Biochem J 1990", Label: "2", Authors: "Creighton", Year: "1990"},
		{RawText: "Ptitsyn OB et al. FEBS Lett 1990", Label: "3", Authors: "Ptitsyn Pavlov Finkelstein", Year: "1990"},
		{RawText: "Kuwajima K. Proteins 1989", Label: "4", Authors: "Kuwajima", Year: "1989"},
		{RawText: "Unlabelled entry", Authors: "Müller"},
	}
}

var backends = []types.IndexBackend{types.BackendMemory, types.BackendSQLite}

func rawTexts(recs []*types.Record) []string {
	var out []string
	for _, r := range recs {
		out = append(out, r.RawText)
	}
	return out
}

func TestAuthorKey(t *testing.T) {
	recs := sampleRecords()
	assert.Equal(t, "Kuwajima Nitta et al 1985", AuthorKey(&recs[0]))
	assert.Equal(t, "Müller et al", AuthorKey(&recs[4]))
	assert.Equal(t, "3", LabelKey(&recs[2]))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		key   KeyFunc
		query string
		want  []string
	}{
		{"single author year", AuthorKey, "Creighton, 1990", []string{"Creighton TE. Biochem J 1990"}},
		{"et al", AuthorKey, "Kuwajima et al., 1985", []string{"Kuwajima K, Nitta K. Biochemistry 1985"}},
		{"ambiguous surname", AuthorKey, "Kuwajima", []string{"Kuwajima K, Nitta K. Biochemistry 1985", "Kuwajima K. Proteins 1989"}},
		{"two records same year", AuthorKey, "1990", []string{"Creighton TE. Biochem J 1990", "Ptitsyn OB et al. FEBS Lett 1990"}},
		{"missing term", AuthorKey, "Creighton, 1985", nil},
		{"diacritic folded", AuthorKey, "Muller et al.", []string{"Unlabelled entry"}},
		{"stop words only", AuthorKey, "and the", nil},
		{"label", LabelKey, "3", []string{"Ptitsyn OB et al. FEBS Lett 1990"}},
		{"bracketed label", LabelKey, "[4]", []string{"Kuwajima K. Proteins 1989"}},
		{"unknown label", LabelKey, "9", nil},
	}

	for _, backend := range backends {
		for _, tt := range tests {
			t.Run(string(backend)+"/"+tt.name, func(t *testing.T) {
				idx, err := Load(backend, sampleRecords(), analysis.Standard{}, tt.key)
				require.NoError(t, err)
				if c, ok := idx.(interface{ Close() error }); ok {
					t.Cleanup(func() { c.Close() })
				}

				got, err := idx.Match(tt.query)
				require.NoError(t, err)
				assert.Equal(t, tt.want, rawTexts(got))
				assert.Equal(t, 5, idx.Len())
			})
		}
	}
}

func TestMatchReturnsPointersIntoCollection(t *testing.T) {
	recs := sampleRecords()
	idx, err := LoadMemory(recs, analysis.Standard{}, LabelKey)
	require.NoError(t, err)

	got, err := idx.Match("2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Same(t, &recs[1], got[0])
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		backend types.IndexBackend
		a       analysis.Analyzer
		key     KeyFunc
	}{
		{"unknown backend", "trigram", analysis.Standard{}, LabelKey},
		{"memory without analyzer", types.BackendMemory, nil, LabelKey},
		{"sqlite without key", types.BackendSQLite, analysis.Standard{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.backend, sampleRecords(), tt.a, tt.key)
			require.Error(t, err)
			var buildErr *BuildError
			assert.True(t, errors.As(err, &buildErr))
		})
	}
}

func TestLoadEmptyCollection(t *testing.T) {
	for _, backend := range backends {
		idx, err := Load(backend, nil, analysis.Standard{}, AuthorKey)
		require.NoError(t, err)
		got, err := idx.Match("Smith 1990")
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestIntersect(t *testing.T) {
	assert.Equal(t, []int{2, 5}, intersect([]int{1, 2, 5, 9}, []int{2, 3, 5}))
	assert.Nil(t, intersect([]int{1}, []int{2}))
}
