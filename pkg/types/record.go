// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Record is one parsed bibliography entry available for matching.
type Record struct {
	// RawText is the entry as it appears in the reference list.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// Label is the reference symbol for numbered bibliographies (e.g. "12").
	// Empty for author-year bibliographies.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Authors is the author string as parsed by the bibliography stage
	// (e.g. "Kuwajima Nitta").
	Authors string `json:"authors" yaml:"authors"`

	// Year is the publication year, if known.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`
}

// BibliographyFile is the on-disk form of one document's record collection.
type BibliographyFile struct {
	// Document identifies the source document (e.g. "kuwajima-1989").
	Document string `json:"document" yaml:"document"`

	// Records lists the document's bibliography in reference-list order.
	Records []Record `json:"records" yaml:"records"`
}
