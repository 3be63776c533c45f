package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmount converts a locale-ambiguous numeric string into a float64.
//
// Separator policy, in order:
//  1. surrounding whitespace is stripped;
//  2. when both ',' and '.' occur, the separator appearing last in the string
//     is the decimal separator and all occurrences of the other are dropped;
//  3. when only ',' occurs, the last comma is the decimal separator if no
//     more than three characters follow it, otherwise every comma is a
//     thousands separator and is dropped;
//  4. a string with only '.' (or no separator) passes through unchanged.
//
// Rule 2 is checked before rule 3 on purpose. The rule-3 boundary means a
// string like "1,234" parses as 1.234 rather than the thousands-grouped
// integer 1234; that trade-off is part of the contract, do not tighten it.
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")

	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if comma > 0 && len(s)-comma-1 <= 3 {
			s = strings.ReplaceAll(s[:comma], ",", "") + "." + s[comma+1:]
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return value, nil
}
