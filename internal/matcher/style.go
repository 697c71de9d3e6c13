// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matcher

import (
	"regexp"
	"strings"

	"github.com/pdiddy/citematch/pkg/types"
)

var (
	// yearRe matches a 4-digit year anywhere in the text.
	yearRe = regexp.MustCompile(`[12][0-9]{3}`)

	// authorNameRe matches a capitalized word such as "Smith".
	authorNameRe = regexp.MustCompile(`[A-Z][A-Za-z]+`)

	// numberedRe matches a whole marker made of integers and integer ranges
	// separated by commas or semicolons, optionally bracketed:
	// "12", "[3, 5-7]", "(1–4; 9)".
	numberedRe = regexp.MustCompile(`^[(\[]?\s*` + numberedItem + `(?:\s*[,;]\s*` + numberedItem + `)*\s*[)\]]?$`)
)

const numberedItem = `\d+(?:\s*[-–]\s*\d+)?`

// Classify decides the citation style of marker text. Author-year is
// tested first and wins whenever the text holds both a year and a
// capitalized word.
func Classify(text string) types.Style {
	switch {
	case isAuthorStyle(text):
		return types.StyleAuthor
	case isNumberedStyle(text):
		return types.StyleNumbered
	default:
		return types.StyleOther
	}
}

func isAuthorStyle(text string) bool {
	return yearRe.MatchString(text) && authorNameRe.MatchString(text)
}

func isNumberedStyle(text string) bool {
	return numberedRe.MatchString(strings.TrimSpace(text))
}
