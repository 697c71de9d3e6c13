// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"unicode"

	"github.com/pdiddy/citematch/pkg/types"
)

type runeClass int

const (
	classWord runeClass = iota
	classSpace
	classNewline
	classPunct
)

func classify(r rune) runeClass {
	switch {
	case r == '\n':
		return classNewline
	case unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	case unicode.IsSpace(r):
		return classSpace
	default:
		return classPunct
	}
}

// Tokenize splits text into layout tokens: runs of letters and digits, runs
// of horizontal whitespace, single newlines, and single punctuation runes.
// NewLineAfter is set on tokens that precede a newline.
func Tokenize(text string) []types.Token {
	var toks []types.Token
	runes := []rune(text)
	for i := 0; i < len(runes); {
		c := classify(runes[i])
		j := i + 1
		if c == classWord || c == classSpace {
			for j < len(runes) && classify(runes[j]) == c {
				j++
			}
		}
		toks = append(toks, types.Token{Text: string(runes[i:j])})
		i = j
	}
	return EnrichNewLines(toks)
}
