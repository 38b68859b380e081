// Package normalize turns the loosely-typed entity bag returned by the
// document-understanding service into a well-typed invoice record. Every
// per-field parse failure degrades to a documented fallback (nil, original
// text, or dropped) and is reported as a diagnostic; nothing here returns an
// error for malformed text.
package normalize

import (
	"fmt"
	"strings"

	"invoicedesk/constants"
	"invoicedesk/internal/entity"
)

// Normalizer consumes raw entities and produces one normalized invoice.
// It is pure and allocates per call, so a single instance is safe for
// concurrent use.
type Normalizer struct {
	defaultCurrency string
	accountCode     string
}

func NewNormalizer(defaultCurrency, accountCode string) *Normalizer {
	if defaultCurrency == "" {
		defaultCurrency = constants.DefaultCurrencyCode
	}
	if accountCode == "" {
		accountCode = constants.DefaultAccountCode
	}
	return &Normalizer{defaultCurrency: defaultCurrency, accountCode: accountCode}
}

// Normalize folds the ordered entity list into an invoice. Duplicates of a
// non-repeating field type overwrite (last write wins); "line_item" entities
// accumulate in input order. Returned diagnostics list every fallback taken.
func (n *Normalizer) Normalize(entities []entity.RawEntity) (entity.Invoice, []entity.Diagnostic) {
	fields := make(map[string]string, len(entities))
	var lineTexts []string
	for _, e := range entities {
		text := StripNewlines(e.Text)
		if e.FieldType == constants.FieldLineItem {
			lineTexts = append(lineTexts, text)
			continue
		}
		fields[e.FieldType] = strings.TrimSpace(text)
	}

	var diags []entity.Diagnostic
	inv := entity.Invoice{CurrencyCode: n.defaultCurrency}

	inv.SupplierName = CleanSupplier(firstPresent(fields, constants.SupplierAliases))

	if v := firstPresent(fields, constants.InvoiceNumberAliases); v != "" {
		inv.InvoiceNumber = &v
	}

	inv.InvoiceDate = NormalizeDate(firstPresent(fields, constants.InvoiceDateAliases))
	if inv.InvoiceDate != "" && !IsISODate(inv.InvoiceDate) {
		diags = append(diags, entity.Diagnostic{
			Field:  "invoice_date",
			Reason: "unrecognized date format, kept original text",
		})
	}

	if v := firstPresent(fields, constants.DueDateAliases); v != "" {
		due := NormalizeDate(v)
		inv.DueDate = &due
		if !IsISODate(due) {
			diags = append(diags, entity.Diagnostic{
				Field:  "due_date",
				Reason: "unrecognized date format, kept original text",
			})
		}
	}

	// First alias that parses wins; `amount`/`total` only matter when the
	// service emitted no usable `total_amount`.
	sawTotalText := false
	for _, k := range constants.TotalAliases {
		v, ok := fields[k]
		if !ok || v == "" {
			continue
		}
		sawTotalText = true
		if amt := ParseAmount(v); amt != nil {
			inv.TotalAmount = amt
			break
		}
	}
	if sawTotalText && inv.TotalAmount == nil {
		diags = append(diags, entity.Diagnostic{
			Field:  "total_amount",
			Reason: "amount text not parseable, kept empty",
		})
	}

	if v := firstPresent(fields, constants.CurrencyAliases); v != "" {
		inv.CurrencyCode = strings.ToUpper(v)
	}

	for i, lt := range lineTexts {
		item := ParseLineItem(lt, n.accountCode)
		if item == nil {
			diags = append(diags, entity.Diagnostic{
				Field:  constants.FieldLineItem,
				Reason: fmt.Sprintf("row %d did not match the quantity/description/amounts layout, dropped", i+1),
			})
			continue
		}
		inv.LineItems = append(inv.LineItems, *item)
	}

	return inv, diags
}

func firstPresent(fields map[string]string, keys []string) string {
	for _, k := range keys {
		if v, ok := fields[k]; ok && v != "" {
			return v
		}
	}
	return ""
}
