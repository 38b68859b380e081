package normalize

import "strings"

var newlineReplacer = strings.NewReplacer("\n", " ", "\r", " ")

// StripNewlines replaces every \n and \r with a single space. Applied to each
// entity's mention text before any other processing, line items included.
func StripNewlines(text string) string {
	return newlineReplacer.Replace(text)
}

// CleanSupplier trims whitespace and then strips trailing punctuation noise
// (comma, semicolon, colon, middle dot) that OCR tends to leave on supplier
// names, e.g. "Acme Corp,;:·" -> "Acme Corp".
func CleanSupplier(text string) string {
	return strings.TrimRight(strings.TrimSpace(text), ",;:·")
}
