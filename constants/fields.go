package constants

import "strings"

// FieldLineItem is the one repeating entity type; every other field type
// overwrites on duplicates (last write wins).
const FieldLineItem = "line_item"

// Alias precedence for header fields. Different processor versions tag the
// same fact differently; the first tag present wins.
var (
	SupplierAliases      = []string{"supplier_name", "supplier", "vendor", "seller"}
	InvoiceNumberAliases = []string{"invoice_id", "invoice_number"}
	InvoiceDateAliases   = []string{"invoice_date", "date"}
	DueDateAliases       = []string{"due_date"}
	TotalAliases         = []string{"total_amount", "amount", "total"}
	CurrencyAliases      = []string{"currency_code", "currency"}
)

// Fallback defaults used when the service emits nothing usable.
const (
	DefaultCurrencyCode = "GBP"
	DefaultAccountCode  = "400"
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
