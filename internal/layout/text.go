// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout reconstructs text from layout token sequences and splits
// token sequences into spans. All span results are index ranges into the
// caller's slice; no tokens are copied.
package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/citematch/pkg/types"
)

// ToText concatenates the token texts.
func ToText(toks []types.Token) string {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// ToTextDehyphenized concatenates the token texts, joining words that were
// hyphenated across a line break: a hyphen token at a line end, preceded by
// a word and followed (after any whitespace) by a lowercase word, is dropped
// together with the whitespace after it. A token is at a line end when its
// NewLineAfter flag is set or the next token holds a newline.
func ToTextDehyphenized(toks []types.Token) string {
	var sb strings.Builder
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if IsHyphen(t.Text) && atLineEnd(toks, i) && i > 0 && isWord(toks[i-1].Text) {
			j := i + 1
			for j < len(toks) && IsSpace(toks[j].Text) {
				j++
			}
			if j < len(toks) && startsLower(toks[j].Text) {
				i = j - 1
				continue
			}
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

func atLineEnd(toks []types.Token, i int) bool {
	return toks[i].NewLineAfter || (i+1 < len(toks) && endsLine(toks[i], toks[i+1]))
}

func endsLine(t, next types.Token) bool {
	return strings.ContainsRune(next.Text, '\n') && !strings.ContainsRune(t.Text, '\n')
}

// EnrichNewLines sets NewLineAfter on every token that is directly followed
// by a newline token. It modifies toks in place and returns it.
func EnrichNewLines(toks []types.Token) []types.Token {
	for i := 0; i+1 < len(toks); i++ {
		if endsLine(toks[i], toks[i+1]) {
			toks[i].NewLineAfter = true
		}
	}
	return toks
}

// IsHyphen reports whether s is a hyphen or en dash.
func IsHyphen(s string) bool {
	return s == "-" || s == "–"
}

// IsSpace reports whether s is non-empty and made only of whitespace.
func IsSpace(s string) bool {
	if s == "" {
		return false
	}
	return strings.TrimSpace(s) == ""
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func startsLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r)
}
