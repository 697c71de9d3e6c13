// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package matcher resolves reference markers found in a document body to the
// bibliography records they cite. A marker is classified as author-year,
// numbered, or other; author-year and numbered markers are split into
// single-reference mentions, and each mention is looked up in an author or
// label index built once from the document's records.
package matcher

import (
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/citematch/internal/analysis"
	"github.com/pdiddy/citematch/internal/counters"
	"github.com/pdiddy/citematch/internal/index"
	"github.com/pdiddy/citematch/internal/layout"
	"github.com/pdiddy/citematch/pkg/types"
)

// Matcher matches reference markers against one record collection. It is
// read-only after New and safe for concurrent Match calls when its counters
// sink is.
type Matcher struct {
	authors  index.Index
	labels   index.Index
	maxRange int
	counters counters.Sink
	logger   *zap.Logger
}

// New builds the author and label indexes over records. The matcher keeps
// pointers into records, so the slice must not be modified while the
// matcher is in use. A nil sink discards counts; a nil logger uses the
// global zap logger.
func New(cfg types.MatcherConfig, records []types.Record, sink counters.Sink, logger *zap.Logger) (*Matcher, error) {
	if sink == nil {
		sink = counters.Discard
	}
	if logger == nil {
		logger = zap.L().With(zap.String("component", "matcher"))
	}
	maxRange := cfg.MaxRange
	if maxRange <= 0 {
		maxRange = types.DefaultMaxRange
	}

	var a analysis.Standard
	authors, err := index.Load(cfg.IndexBackend, records, a, index.AuthorKey)
	if err != nil {
		return nil, err
	}
	labels, err := index.Load(cfg.IndexBackend, records, a, index.LabelKey)
	if err != nil {
		closeIndex(authors)
		return nil, err
	}

	return &Matcher{
		authors:  authors,
		labels:   labels,
		maxRange: maxRange,
		counters: sink,
		logger:   logger,
	}, nil
}

// Close releases index resources held by the matcher.
func (m *Matcher) Close() error {
	err := closeIndex(m.authors)
	if lerr := closeIndex(m.labels); err == nil {
		err = lerr
	}
	return err
}

func closeIndex(idx index.Index) error {
	if c, ok := idx.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Match resolves the marker made of toks. It returns one result per mention
// in marker order; unresolved mentions have a nil Record. Result Tokens
// alias toks.
func (m *Matcher) Match(toks []types.Token) []types.MatchResult {
	text := layout.ToTextDehyphenized(toks)

	switch Classify(text) {
	case types.StyleAuthor:
		m.counters.Increment(counters.StyleAuthors)
		return m.resolveAll(types.StyleAuthor, text, toks, authorMentions(toks))

	case types.StyleNumbered:
		m.counters.Increment(counters.StyleNumbered)
		labels, errs := numberedLabels(toks, m.maxRange)
		for _, err := range errs {
			m.logger.Warn("skipping citation range", zap.String("marker", text), zap.Error(err))
		}
		return m.resolveAll(types.StyleNumbered, text, toks, labels)

	default:
		m.counters.Increment(counters.StyleOther)
		m.logger.Debug("other citation style", zap.String("marker", text))
		return []types.MatchResult{{
			Text:   text,
			Span:   layout.Whole(toks),
			Tokens: toks,
		}}
	}
}

// MatchText tokenizes text and matches it as one marker.
func (m *Matcher) MatchText(text string) []types.MatchResult {
	return m.Match(layout.Tokenize(text))
}

func (m *Matcher) resolveAll(style types.Style, marker string, toks []types.Token, mentions []mention) []types.MatchResult {
	results := make([]types.MatchResult, 0, len(mentions))
	for _, mn := range mentions {
		results = append(results, m.resolve(style, marker, toks, mn))
	}
	return results
}

// resolve looks up one mention. Ambiguous author-year mentions go through
// postFilter; ambiguous numeric labels stay unresolved.
func (m *Matcher) resolve(style types.Style, marker string, toks []types.Token, mn mention) types.MatchResult {
	res := types.MatchResult{
		Text:   mn.text,
		Span:   mn.span,
		Tokens: mn.span.Of(toks),
	}

	idx := m.labels
	if style == types.StyleAuthor {
		idx = m.authors
	}

	candidates, err := idx.Match(mn.text)
	if err != nil {
		m.logger.Error("index query failed", zap.String("mention", mn.text), zap.Error(err))
		candidates = nil
	}

	switch len(candidates) {
	case 0:
		m.counters.Increment(counters.UnmatchedRefMarkers)
		m.counters.Increment(counters.NoCandidates)
		m.logger.Debug("no candidates", zap.String("marker", marker), zap.String("mention", mn.text))
		return res
	case 1:
		m.counters.Increment(counters.MatchedRefMarkers)
		res.Record = candidates[0]
		return res
	}

	m.counters.Increment(counters.ManyCandidates)
	if style != types.StyleAuthor {
		m.counters.Increment(counters.UnmatchedRefMarkers)
		m.logger.Info("many candidates", zap.String("marker", marker), zap.String("mention", mn.text), zap.Strings("candidates", rawTexts(candidates)))
		return res
	}

	filtered := postFilter(mn.text, candidates)
	switch len(filtered) {
	case 1:
		m.counters.Increment(counters.MatchedRefMarkers)
		m.counters.Increment(counters.MatchedRefMarkersAfterPostFiltering)
		res.Record = filtered[0]
	case 0:
		m.counters.Increment(counters.UnmatchedRefMarkers)
		m.counters.Increment(counters.NoCandidatesAfterPostFiltering)
		m.logger.Debug("no candidates after post-filtering", zap.String("marker", marker), zap.String("mention", mn.text))
	default:
		m.counters.Increment(counters.UnmatchedRefMarkers)
		m.counters.Increment(counters.ManyCandidatesAfterPostFiltering)
		m.logger.Info("many candidates", zap.String("marker", marker), zap.String("mention", mn.text), zap.Strings("candidates", rawTexts(filtered)))
	}
	return res
}

// postFilter keeps the candidates whose raw text starts with the mention's
// first whitespace-delimited token, punctuation included, compared
// case-insensitively. It never adds candidates.
func postFilter(mention string, candidates []*types.Record) []*types.Record {
	var author string
	if fields := strings.Fields(mention); len(fields) > 0 {
		author = strings.ToLower(fields[0])
	}

	var out []*types.Record
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(c.RawText)), author) {
			out = append(out, c)
		}
	}
	return out
}

func rawTexts(recs []*types.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.RawText
	}
	return out
}
