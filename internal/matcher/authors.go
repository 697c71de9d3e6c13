// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matcher

import (
	"github.com/pdiddy/citematch/internal/layout"
	"github.com/pdiddy/citematch/pkg/types"
)

var (
	isLeadingSeparator  = layout.Is(",", ";")
	isTrailingSeparator = layout.Is(",", ";", ".")
	isOpenBracket       = layout.Is("(", "[")
	isCloseBracket      = layout.Is(")", "]")
)

// authorMentions splits an author-year marker into single-reference
// mentions, e.g. "Kuwajima et al., 1985; Creighton, 1990" into
// "Kuwajima et al., 1985" and "Creighton, 1990".
func authorMentions(toks []types.Token) []mention {
	var out []mention
	for _, group := range layout.Split(toks, layout.Whole(toks), layout.Is(";")) {
		for _, span := range splitAuthorGroup(toks, group) {
			span = trimMention(toks, span)
			if span.IsEmpty() {
				continue
			}
			out = append(out, mention{
				text: layout.ToTextDehyphenized(span.Of(toks)),
				span: span,
			})
		}
	}
	return out
}

// splitAuthorGroup handles groups citing several works without semicolons.
// "Khechinashvili et al. (1973) and Privalov (1979)" splits on "and";
// "Van Kan et al., 1990, Otte et al., 1992" splits after each year.
// Years are counted per token, so the group yields one chunk per counted
// year even when a single token holds two year-like digit runs.
func splitAuthorGroup(toks []types.Token, group types.Span) []types.Span {
	years := yearTokens(toks, group)
	switch {
	case years == 2 && layout.Contains(toks, group, "and"):
		return layout.Split(toks, group, layout.Is("and"))
	case years > 1:
		return layout.SplitAfter(toks, group, yearRe.MatchString)
	default:
		return []types.Span{group}
	}
}

// yearTokens counts the tokens in span that contain a year.
func yearTokens(toks []types.Token, span types.Span) int {
	n := 0
	for _, t := range span.Of(toks) {
		if yearRe.MatchString(t.Text) {
			n++
		}
	}
	return n
}

// trimMention drops edge whitespace and separators from span, plus edge
// brackets that are unbalanced within the span or enclose all of it.
// "(Smith, 1990" and "Jones, 1992)" lose their bracket; "Privalov (1979)"
// keeps it.
func trimMention(toks []types.Token, span types.Span) types.Span {
	for {
		span = layout.TrimSpan(toks, span, isLeadingSeparator, isTrailingSeparator)
		if span.IsEmpty() {
			return span
		}
		opens, closes := bracketCounts(toks, span)
		switch {
		case isCloseBracket(toks[span.Start].Text):
			span.Start++
		case isOpenBracket(toks[span.End-1].Text):
			span.End--
		case isOpenBracket(toks[span.Start].Text) && (opens > closes || encloses(toks, span)):
			span.Start++
		case isCloseBracket(toks[span.End-1].Text) && closes > opens:
			span.End--
		default:
			return span
		}
	}
}

func bracketCounts(toks []types.Token, span types.Span) (opens, closes int) {
	for _, t := range span.Of(toks) {
		switch {
		case isOpenBracket(t.Text):
			opens++
		case isCloseBracket(t.Text):
			closes++
		}
	}
	return opens, closes
}

// encloses reports whether the bracket opening span closes at its last
// token.
func encloses(toks []types.Token, span types.Span) bool {
	depth := 0
	for i := span.Start; i < span.End; i++ {
		switch {
		case isOpenBracket(toks[i].Text):
			depth++
		case isCloseBracket(toks[i].Text):
			depth--
			if depth == 0 {
				return i == span.End-1
			}
		}
	}
	return false
}
