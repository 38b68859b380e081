package normalize

import (
	"regexp"
	"strconv"
)

var amountJunk = regexp.MustCompile(`[^0-9.]`)

// ParseAmount turns free-form currency text like "£2,604.00" into 2604.00.
// Every character that is not an ASCII digit or a dot is stripped before
// parsing, so negative signs and locale-style separators are lost:
// "-12.50" parses as 12.50 and "1.234,56" style inputs come out wrong.
// That stripping is intentional, long-standing behavior; keep it unless
// locale awareness becomes an explicit requirement.
// Returns nil when the input is empty or nothing parseable remains.
func ParseAmount(text string) *float64 {
	if text == "" {
		return nil
	}
	cleaned := amountJunk.ReplaceAllString(text, "")
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}
