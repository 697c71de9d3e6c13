// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citematch/pkg/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadMarkers(t *testing.T) {
	path := writeFile(t, "markers.yaml", `document: paper-a
markers:
  - text: "(Creighton, 1990)"
  - tokens:
      - text: "["
      - text: "3"
      - text: "]"
`)

	mf, err := readMarkers(path)
	require.NoError(t, err)
	assert.Equal(t, "paper-a", mf.Document)
	require.Len(t, mf.Markers, 2)
	assert.Equal(t, "(Creighton, 1990)", mf.Markers[0].Text)
	assert.Len(t, mf.Markers[1].Tokens, 3)
}

func TestReadMarkersJSON(t *testing.T) {
	path := writeFile(t, "markers.json", `{"document": "paper-b", "markers": [{"text": "[4]"}]}`)

	mf, err := readMarkers(path)
	require.NoError(t, err)
	assert.Equal(t, "paper-b", mf.Document)
	require.Len(t, mf.Markers, 1)
}

func TestReadMarkersErrors(t *testing.T) {
	_, err := readMarkers("")
	assert.Error(t, err)

	_, err = readMarkers(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = readMarkers(writeFile(t, "bad.yaml", "markers: [unclosed"))
	assert.Error(t, err)
}

func TestMarkerTokens(t *testing.T) {
	given := []types.Token{{Text: "7"}}
	got := markerTokens([]types.Marker{
		{Text: "Smith, 1990"},
		{Tokens: given},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "Smith, 1990", toText(got[0]))
	assert.Same(t, &given[0], &got[1][0])
}

func toText(toks []types.Token) string {
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.Text)
	}
	return b.String()
}

func TestLoadRecordsFromFile(t *testing.T) {
	path := writeFile(t, "records.yaml", `document: paper-a
records:
  - raw_text: "Creighton TE. Biochem J 1990"
    authors: Creighton
    year: "1990"
    label: "3"
`)

	records, err := loadRecords(context.Background(), path, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Creighton", records[0].Authors)
	assert.Equal(t, "3", records[0].Label)
}

func TestLoadRecordsRequiresSource(t *testing.T) {
	_, err := loadRecords(context.Background(), "", "")
	assert.Error(t, err)
}

func TestFormatMatchOutput(t *testing.T) {
	rec := &types.Record{RawText: "Creighton TE. Biochem J 1990", Authors: "Creighton", Year: "1990"}
	markers := [][]types.Token{{{Text: "Creighton"}, {Text: ","}, {Text: " "}, {Text: "1990"}}}
	results := [][]types.MatchResult{{
		{Text: "Creighton, 1990", Span: types.Span{Start: 0, End: 4}, Tokens: markers[0], Record: rec},
	}}

	t.Run("text", func(t *testing.T) {
		var buf strings.Builder
		require.NoError(t, formatMatchOutput(&buf, markers, results, "text"))
		out := buf.String()
		assert.Contains(t, out, "Creighton TE. Biochem J 1990")
		assert.Contains(t, out, "1 markers, 1 mentions, 1 matched")
	})

	t.Run("json", func(t *testing.T) {
		var buf strings.Builder
		require.NoError(t, formatMatchOutput(&buf, markers, results, "json"))

		var got []markerOutput
		require.NoError(t, json.Unmarshal([]byte(buf.String()), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Creighton, 1990", got[0].Marker)
		require.Len(t, got[0].Results, 1)
		assert.Equal(t, types.Span{Start: 0, End: 4}, got[0].Results[0].Span)
		require.NotNil(t, got[0].Results[0].Record)
		assert.Equal(t, "Creighton", got[0].Results[0].Record.Authors)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf strings.Builder
		require.NoError(t, formatMatchOutput(&buf, markers, results, "yaml"))
		assert.Contains(t, buf.String(), "Creighton, 1990")
		assert.Contains(t, buf.String(), "raw_text: Creighton TE. Biochem J 1990")
	})

	t.Run("empty", func(t *testing.T) {
		var buf strings.Builder
		require.NoError(t, formatMatchOutput(&buf, nil, nil, "text"))
		assert.Equal(t, "No markers found.\n", buf.String())
	})
}

func TestPrintCounters(t *testing.T) {
	var buf strings.Builder
	printCounters(&buf, map[string]int64{"STYLE_NUMBERED": 1, "MATCHED_REF_MARKERS": 3})

	out := buf.String()
	assert.Less(t, strings.Index(out, "MATCHED_REF_MARKERS"), strings.Index(out, "STYLE_NUMBERED"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
