// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for citematch: layout tokens,
// bibliography records, match results, and configuration.
package types

// Token is one positioned text atom from the layout stage. Whitespace and
// punctuation are tokens of their own, so concatenating Text over a token
// sequence reproduces the original text.
type Token struct {
	// Text is the raw token text.
	Text string `json:"text" yaml:"text"`

	// NewLineAfter is set when a line break follows this token in the layout.
	// Dehyphenation uses it to join words split across lines.
	NewLineAfter bool `json:"newline_after,omitempty" yaml:"newline_after,omitempty"`
}

// Span is a half-open index range [Start, End) into a token sequence.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of tokens covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no tokens.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Of returns the tokens covered by the span. The result aliases toks.
func (s Span) Of(toks []Token) []Token {
	return toks[s.Start:s.End]
}
