// Package export renders persisted invoice records for downstream consumers:
// the accounting API's draft-bill JSON, header-only CSV, and XLSX workbooks.
package export

import (
	"encoding/json"

	"invoicedesk/internal/entity"
)

// Payload is the accounting API's draft bill shape. Field names follow the
// API's casing, not ours.
type Payload struct {
	Type          string        `json:"Type"`
	Contact       Contact       `json:"Contact"`
	Date          string        `json:"Date"`
	DueDate       string        `json:"DueDate,omitempty"`
	LineItems     []PayloadLine `json:"LineItems"`
	InvoiceNumber string        `json:"InvoiceNumber,omitempty"`
	CurrencyCode  string        `json:"CurrencyCode"`
	Total         *float64      `json:"Total,omitempty"`
}

type Contact struct {
	Name string `json:"Name"`
}

type PayloadLine struct {
	Description string  `json:"Description"`
	Quantity    float64 `json:"Quantity"`
	UnitAmount  float64 `json:"UnitAmount"`
	AccountCode string  `json:"AccountCode"`
}

// Draft bills are payable invoices on the accounting side.
const payloadType = "ACCPAY"

// BuildPayload maps a record to the accounting payload. Nothing is re-parsed
// here; whatever the reviewer approved is what goes out.
func BuildPayload(rec *entity.InvoiceRecord) Payload {
	p := Payload{
		Type:         payloadType,
		Contact:      Contact{Name: rec.SupplierName},
		Date:         rec.InvoiceDate,
		CurrencyCode: rec.CurrencyCode,
		Total:        rec.TotalAmount,
		LineItems:    make([]PayloadLine, 0, len(rec.LineItems)),
	}
	if rec.DueDate != nil {
		p.DueDate = *rec.DueDate
	}
	if rec.InvoiceNumber != nil {
		p.InvoiceNumber = *rec.InvoiceNumber
	}
	for _, li := range rec.LineItems {
		p.LineItems = append(p.LineItems, PayloadLine{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitAmount:  li.UnitAmount,
			AccountCode: li.AccountCode,
		})
	}
	return p
}

// MarshalPayload renders the payload as indented JSON for file export.
func MarshalPayload(rec *entity.InvoiceRecord) ([]byte, error) {
	return json.MarshalIndent(BuildPayload(rec), "", "  ")
}
