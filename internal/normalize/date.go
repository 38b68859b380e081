package normalize

import (
	"regexp"
	"strings"
	"time"
)

// dateLayouts is tried in order; the first full match wins. Day-first layouts
// come before month-first on purpose, so "03/04/2024" always reads as 3 April.
// Precedence is fixed by list order, not locale.
var dateLayouts = []string{
	"2006-01-02",
	"02 January 2006",
	"02 Jan 2006",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"01-02-2006",
}

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeDate converts free-form date text to ISO YYYY-MM-DD. When no layout
// matches, the trimmed original text is returned unchanged rather than an
// error; callers treat that as a documented fallback. Empty input yields "".
func NormalizeDate(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// IsISODate reports whether s is already in YYYY-MM-DD shape. Used to tell a
// successful normalization from the kept-original fallback.
func IsISODate(s string) bool {
	return isoDate.MatchString(s)
}
