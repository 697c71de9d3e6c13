// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matcher

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pdiddy/citematch/internal/layout"
	"github.com/pdiddy/citematch/pkg/types"
)

var intRe = regexp.MustCompile(`\d+`)

// mention is one atomic piece of a marker together with its token span.
type mention struct {
	text string
	span types.Span
}

// RangeParseError reports a numeric range segment whose bounds could not be
// read. The segment is skipped.
type RangeParseError struct {
	Segment string
	Err     error
}

func (e *RangeParseError) Error() string {
	return fmt.Sprintf("cannot parse citation reference range %q: %v", e.Segment, e.Err)
}

func (e *RangeParseError) Unwrap() error {
	return e.Err
}

var isListSeparator = layout.Is(",", ";")

// numberedLabels splits a numbered marker into labels. Ranges such as
// "5-7" expand to one label per integer: the lower bound keeps the left
// tokens, the upper bound the right tokens, and every label in between
// points at the range operator token. Reversed ranges and ranges spanning
// maxRange or more are dropped. Unparseable ranges are dropped and
// returned as errors.
func numberedLabels(toks []types.Token, maxRange int) ([]mention, []error) {
	var (
		labels []mention
		errs   []error
	)

	for _, seg := range layout.Split(toks, layout.Whole(toks), isListSeparator) {
		seg = layout.TrimSpan(toks, seg, isOpenBracket, isCloseBracket)
		if seg.IsEmpty() {
			continue
		}

		op := layout.TokenPos(toks, seg, layout.IsHyphen)
		if op < 0 {
			labels = append(labels, mention{text: layout.ToText(seg.Of(toks)), span: seg})
			continue
		}

		left := layout.TrimSpan(toks, types.Span{Start: seg.Start, End: op}, nil, nil)
		right := layout.TrimSpan(toks, types.Span{Start: op + 1, End: seg.End}, nil, nil)

		a, err := firstInt(toks, left)
		if err != nil {
			errs = append(errs, &RangeParseError{Segment: layout.ToText(seg.Of(toks)), Err: err})
			continue
		}
		b, err := firstInt(toks, right)
		if err != nil {
			errs = append(errs, &RangeParseError{Segment: layout.ToText(seg.Of(toks)), Err: err})
			continue
		}

		if a >= b || b-a >= maxRange {
			continue
		}

		for i := a; i <= b; i++ {
			span := types.Span{Start: op, End: op + 1}
			switch i {
			case a:
				span = left
			case b:
				span = right
			}
			labels = append(labels, mention{text: strconv.Itoa(i), span: span})
		}
	}

	return labels, errs
}

// firstInt parses the first run of digits in the span's text.
func firstInt(toks []types.Token, span types.Span) (int, error) {
	text := layout.ToText(span.Of(toks))
	digits := intRe.FindString(text)
	if digits == "" {
		return 0, fmt.Errorf("no integer in %q", text)
	}
	return strconv.Atoi(digits)
}
