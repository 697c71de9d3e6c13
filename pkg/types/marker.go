// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Style classifies the citation style of a reference marker.
type Style int

const (
	// StyleOther is used for markers that are neither author-year nor numbered.
	StyleOther Style = iota
	// StyleAuthor is author-year citation, e.g. "(Smith et al., 1990)".
	StyleAuthor
	// StyleNumbered is numeric citation, e.g. "[3, 5-7]".
	StyleNumbered
)

// String returns the lowercase style name.
func (s Style) String() string {
	switch s {
	case StyleAuthor:
		return "author"
	case StyleNumbered:
		return "numbered"
	default:
		return "other"
	}
}

// MatchResult links one mention inside a reference marker to the record it
// refers to.
type MatchResult struct {
	// Text is the mention text, e.g. "Creighton, 1990" or "6".
	Text string `json:"text" yaml:"text"`

	// Span locates the mention's tokens in the marker token sequence. For
	// labels produced inside a numeric range it is the range operator token.
	Span Span `json:"span" yaml:"span"`

	// Tokens is Span applied to the marker tokens. It aliases the caller's
	// slice and is not serialized.
	Tokens []Token `json:"-" yaml:"-"`

	// Record is the matched record, or nil when the mention is unresolved.
	Record *Record `json:"record,omitempty" yaml:"record,omitempty"`
}

// Matched reports whether the mention was resolved to a record.
func (r MatchResult) Matched() bool {
	return r.Record != nil
}

// Marker is one reference marker occurrence read from a markers file.
// Either Text or Tokens is set; Text is tokenized when Tokens is empty.
type Marker struct {
	Text   string  `json:"text,omitempty" yaml:"text,omitempty"`
	Tokens []Token `json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// MarkersFile is the on-disk form of the markers found in one document.
type MarkersFile struct {
	// Document names the document whose bibliography the markers cite.
	Document string `json:"document" yaml:"document"`

	// Markers lists the marker occurrences in reading order.
	Markers []Marker `json:"markers" yaml:"markers"`
}
