// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"github.com/pdiddy/citematch/pkg/types"
)

// Whole returns the span covering all of toks.
func Whole(toks []types.Token) types.Span {
	return types.Span{Start: 0, End: len(toks)}
}

// Split cuts span into sub-spans at every token for which isSep returns
// true. Separator tokens are discarded, as are sub-spans that contain only
// whitespace.
func Split(toks []types.Token, span types.Span, isSep func(string) bool) []types.Span {
	var out []types.Span
	start := span.Start
	for i := span.Start; i < span.End; i++ {
		if !isSep(toks[i].Text) {
			continue
		}
		if s := (types.Span{Start: start, End: i}); !blank(toks, s) {
			out = append(out, s)
		}
		start = i + 1
	}
	if s := (types.Span{Start: start, End: span.End}); !blank(toks, s) {
		out = append(out, s)
	}
	return out
}

// SplitAfter cuts span into consecutive chunks, each ending at (and
// including) a token for which isCut returns true. Tokens after the last
// cut token are appended to the final chunk.
func SplitAfter(toks []types.Token, span types.Span, isCut func(string) bool) []types.Span {
	var out []types.Span
	start := span.Start
	for i := span.Start; i < span.End; i++ {
		if isCut(toks[i].Text) {
			out = append(out, types.Span{Start: start, End: i + 1})
			start = i + 1
		}
	}
	if start < span.End {
		if len(out) == 0 {
			out = append(out, types.Span{Start: start, End: span.End})
		} else {
			out[len(out)-1].End = span.End
		}
	}
	return out
}

// TrimSpan narrows span by dropping leading tokens for which trimLeft
// returns true and trailing tokens for which trimRight returns true.
// Whitespace tokens are always trimmed. The result may be empty.
func TrimSpan(toks []types.Token, span types.Span, trimLeft, trimRight func(string) bool) types.Span {
	for span.Start < span.End {
		t := toks[span.Start].Text
		if !IsSpace(t) && (trimLeft == nil || !trimLeft(t)) {
			break
		}
		span.Start++
	}
	for span.End > span.Start {
		t := toks[span.End-1].Text
		if !IsSpace(t) && (trimRight == nil || !trimRight(t)) {
			break
		}
		span.End--
	}
	return span
}

// TokenPos returns the index of the first token in span for which match
// returns true, or -1.
func TokenPos(toks []types.Token, span types.Span, match func(string) bool) int {
	for i := span.Start; i < span.End; i++ {
		if match(toks[i].Text) {
			return i
		}
	}
	return -1
}

// Contains reports whether any token in span has exactly the text s.
func Contains(toks []types.Token, span types.Span, s string) bool {
	return TokenPos(toks, span, func(t string) bool { return t == s }) >= 0
}

// Is returns a predicate matching any of the given token texts.
func Is(texts ...string) func(string) bool {
	return func(t string) bool {
		for _, s := range texts {
			if t == s {
				return true
			}
		}
		return false
	}
}

func blank(toks []types.Token, span types.Span) bool {
	for i := span.Start; i < span.End; i++ {
		if !IsSpace(toks[i].Text) {
			return false
		}
	}
	return true
}
