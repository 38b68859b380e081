package entity

import (
	"time"

	"github.com/google/uuid"
)

// RawEntity is one (field-type, text) fact extracted by the upstream
// document-understanding service. The field type is an open-ended tag;
// "line_item" is the only repeating one.
type RawEntity struct {
	FieldType string `json:"field_type"`
	Text      string `json:"text"`
}

// LineItem is one parsed product/service row within an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitAmount  float64 `json:"unit_amount"`
	AccountCode string  `json:"account_code"`
}

// Invoice is the canonical normalized record produced from a raw entity bag.
// It is a plain value: once returned by the normalizer it is never mutated;
// reviewer edits apply to the persisted InvoiceRecord copy instead.
type Invoice struct {
	SupplierName  string     `json:"supplier_name"`
	InvoiceNumber *string    `json:"invoice_number,omitempty"`
	InvoiceDate   string     `json:"invoice_date"`
	DueDate       *string    `json:"due_date,omitempty"`
	CurrencyCode  string     `json:"currency_code"`
	TotalAmount   *float64   `json:"total_amount,omitempty"`
	LineItems     []LineItem `json:"line_items"`
}

// InvoiceRecord is the persisted copy of a normalized invoice, plus upload
// bookkeeping. RawJSON keeps the raw extracted entity list for the
// "raw extracted data" view; ErrorMessage is set when extraction failed and
// the record was created empty for manual fill-in.
type InvoiceRecord struct {
	ID uuid.UUID `json:"id"`
	Invoice
	Status           string    `json:"status"`
	RawJSON          string    `json:"raw_json,omitempty"`
	OriginalFilename string    `json:"original_filename,omitempty"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Diagnostic records one field-level fallback taken while normalizing:
// an unparseable amount or date, or a dropped line-item row. Diagnostics are
// informational and never block persistence.
type Diagnostic struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}
