// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citematch/internal/bibstore"
	"github.com/pdiddy/citematch/internal/counters"
	"github.com/pdiddy/citematch/internal/layout"
	"github.com/pdiddy/citematch/internal/logger"
	"github.com/pdiddy/citematch/internal/matcher"
	"github.com/pdiddy/citematch/pkg/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Resolve reference markers against a document's bibliography",
	Long: `Match reads a markers file (YAML: document, markers with text or tokens)
and resolves every marker against bibliography records. Records come from a
records file (--records) or from the store (--document, defaulting to the
markers file's document).

Results are printed as a table, JSON, or YAML, followed by a summary of the
match counters. --metrics-file also writes the counters in Prometheus text
format.`,
	RunE: runMatch,
}

func runMatch(cmd *cobra.Command, args []string) error {
	markersPath, _ := cmd.Flags().GetString("markers")
	recordsPath, _ := cmd.Flags().GetString("records")
	docID, _ := cmd.Flags().GetString("document")
	format, _ := cmd.Flags().GetString("format")
	workers, _ := cmd.Flags().GetInt("workers")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")
	if metricsFile == "" {
		metricsFile = cfg.Metrics.File
	}

	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q: use text, json or yaml", format)
	}

	mf, err := readMarkers(markersPath)
	if err != nil {
		return err
	}
	if docID == "" {
		docID = mf.Document
	}

	ctx := context.Background()
	records, err := loadRecords(ctx, recordsPath, docID)
	if err != nil {
		return err
	}

	mem := &counters.Memory{}
	reg := prometheus.NewRegistry()
	prom, err := counters.NewPrometheus(reg)
	if err != nil {
		return err
	}

	m, err := matcher.New(cfg.Matcher, records, counters.Tee{mem, prom}, logger.WithComponent("matcher"))
	if err != nil {
		return fmt.Errorf("building matcher: %w", err)
	}
	defer m.Close()

	markers := markerTokens(mf.Markers)
	results, err := matcher.MatchAll(ctx, m, markers, workers)
	if err != nil {
		return err
	}

	if err := formatMatchOutput(os.Stdout, markers, results, format); err != nil {
		return err
	}
	if format == "text" {
		printCounters(os.Stdout, mem.Snapshot())
	}

	if metricsFile != "" {
		if err := counters.WriteTextfile(metricsFile, reg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote metrics to %s\n", metricsFile)
	}
	return nil
}

// readMarkers parses a markers file. JSON input is accepted as YAML.
func readMarkers(path string) (*types.MarkersFile, error) {
	if path == "" {
		return nil, fmt.Errorf("--markers is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading markers: %w", err)
	}
	var mf types.MarkersFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parsing markers %s: %w", path, err)
	}
	return &mf, nil
}

// loadRecords reads records from a records file when path is set and from
// the store otherwise.
func loadRecords(ctx context.Context, path, docID string) ([]types.Record, error) {
	if path != "" {
		bib, err := bibstore.ReadBibliography(path)
		if err != nil {
			return nil, fmt.Errorf("reading records %s: %w", path, err)
		}
		return bib.Records, nil
	}
	if docID == "" {
		return nil, fmt.Errorf("records source required: provide --records, --document, or a document in the markers file")
	}

	store, err := bibstore.NewStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Records(ctx, docID)
}

// markerTokens returns each marker's tokens, tokenizing text-only markers.
func markerTokens(markers []types.Marker) [][]types.Token {
	out := make([][]types.Token, len(markers))
	for i, mk := range markers {
		if len(mk.Tokens) > 0 {
			out[i] = mk.Tokens
		} else {
			out[i] = layout.Tokenize(mk.Text)
		}
	}
	return out
}

// markerOutput is the serialized form of one matched marker.
type markerOutput struct {
	Marker  string              `json:"marker" yaml:"marker"`
	Results []types.MatchResult `json:"results" yaml:"results"`
}

func formatMatchOutput(w io.Writer, markers [][]types.Token, results [][]types.MatchResult, format string) error {
	out := make([]markerOutput, len(markers))
	for i := range markers {
		out[i] = markerOutput{Marker: layout.ToText(markers[i]), Results: results[i]}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(out) == 0 {
		fmt.Fprintln(w, "No markers found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-30s  %-30s  %s\n", "#", "Marker", "Mention", "Record")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	matched, total := 0, 0
	for i, o := range out {
		marker := truncate(o.Marker, 30)
		for _, r := range o.Results {
			total++
			record := "(unmatched)"
			if r.Matched() {
				matched++
				record = truncate(strings.TrimSpace(r.Record.RawText), 30)
			}
			fmt.Fprintf(w, "%-4d  %-30s  %-30s  %s\n", i+1, marker, truncate(r.Text, 30), record)
		}
	}

	fmt.Fprintf(w, "\n%d markers, %d mentions, %d matched\n", len(out), total, matched)
	return nil
}

func printCounters(w io.Writer, snapshot map[string]int64) {
	if len(snapshot) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, name := range counters.Names(snapshot) {
		fmt.Fprintf(w, "%-42s %d\n", name, snapshot[name])
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	matchCmd.Flags().String("markers", "", "markers file (YAML or JSON)")
	matchCmd.Flags().String("records", "", "bibliography records file; overrides the store")
	matchCmd.Flags().String("document", "", "document ID in the store (default: the markers file's document)")
	matchCmd.Flags().String("format", "text", "output format: text, json or yaml")
	matchCmd.Flags().Int("workers", 4, "maximum concurrent matches (0 = unbounded)")
	matchCmd.Flags().String("metrics-file", "", "write match counters to a Prometheus textfile")

	rootCmd.AddCommand(matchCmd)
}
