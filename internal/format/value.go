package format

import (
	"fmt"
	"strings"
)

const (
	// TruncationLimit is the length from which a displayed integer is
	// shortened in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept at each end of a truncated
	// integer.
	DisplayEdges = 25
)

// TruncateDigits shortens a decimal string longer than TruncationLimit to
// its first and last DisplayEdges digits with an elision marker and the
// total digit count. Shorter strings are returned unchanged.
func TruncateDigits(s string) string {
	if len(s) <= TruncationLimit {
		return s
	}
	return fmt.Sprintf("%s...%s (%d digits)", s[:DisplayEdges], s[len(s)-DisplayEdges:], len(s))
}

// TruncateValue applies TruncateDigits to an integer or to each side of an
// "a/b" fraction.
func TruncateValue(s string) string {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return TruncateDigits(s)
	}
	return TruncateDigits(num) + "/" + TruncateDigits(den)
}

// JoinValues renders a list of values on one line, separated by spaces,
// eliding the middle of lists longer than maxItems. maxItems <= 0 disables
// the elision.
func JoinValues(values []string, maxItems int) string {
	if maxItems <= 0 || len(values) <= maxItems {
		return strings.Join(values, " ")
	}
	head := maxItems / 2
	tail := maxItems - head
	return fmt.Sprintf("%s ... %s (%d values)",
		strings.Join(values[:head], " "),
		strings.Join(values[len(values)-tail:], " "),
		len(values))
}
