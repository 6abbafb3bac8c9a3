package patch

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Span marks a half-open rune range [Start, End) of a line.
type Span struct {
	Start int
	End   int
}

// ChangedSpans diffs the two sides of a Changed row character by character
// and returns the rune ranges that differ on each side. Equal lines yield no
// spans.
func ChangedSpans(left, right string) ([]Span, []Span) {
	if left == right {
		return nil, nil
	}
	matcher := difflib.NewMatcher(strings.Split(left, ""), strings.Split(right, ""))

	var leftSpans, rightSpans []Span
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r':
			leftSpans = appendSpan(leftSpans, op.I1, op.I2)
			rightSpans = appendSpan(rightSpans, op.J1, op.J2)
		case 'd':
			leftSpans = appendSpan(leftSpans, op.I1, op.I2)
		case 'i':
			rightSpans = appendSpan(rightSpans, op.J1, op.J2)
		}
	}
	return leftSpans, rightSpans
}

func appendSpan(spans []Span, start, end int) []Span {
	if end <= start {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].End == start {
		spans[n-1].End = end
		return spans
	}
	return append(spans, Span{Start: start, End: end})
}
