// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis normalizes text into index terms. It folds case and
// diacritics, splits on non-alphanumeric boundaries, and removes English
// stop words, so "Müller and Smith, 1990" and "muller smith 1990" analyze
// to the same terms.
package analysis

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopWords is the classic English stop set used by Lucene analyzers.
// "et" and "al" are deliberately absent: author keys end in "et al".
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "if": {}, "in": {}, "into": {}, "is": {},
	"it": {}, "no": {}, "not": {}, "of": {}, "on": {}, "or": {}, "such": {},
	"that": {}, "the": {}, "their": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "to": {}, "was": {}, "will": {}, "with": {},
}

// Analyzer turns text into normalized terms.
type Analyzer interface {
	Analyze(text string) []string
}

// Standard is the default Analyzer. The zero value is ready to use and safe
// for concurrent use.
type Standard struct{}

// Analyze returns the distinct terms of text in order of first occurrence.
func (Standard) Analyze(text string) []string {
	words := strings.FieldsFunc(Fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]struct{}, len(words))
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		terms = append(terms, w)
	}
	return terms
}

// Fold lower-cases text and strips combining marks ("Bühler" -> "buhler").
func Fold(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}
