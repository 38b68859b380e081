package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"invoicedesk/internal/entity"
)

// WriteCSV writes the flattened header-only export: one row per record, line
// items excluded. Totals are rendered with exactly two decimal places, or an
// empty cell when absent.
func WriteCSV(w io.Writer, recs ...*entity.InvoiceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"supplier_name", "invoice_id", "invoice_date", "total_amount", "status"}); err != nil {
		return err
	}
	for _, rec := range recs {
		total := ""
		if rec.TotalAmount != nil {
			total = fmt.Sprintf("%.2f", *rec.TotalAmount)
		}
		number := ""
		if rec.InvoiceNumber != nil {
			number = *rec.InvoiceNumber
		}
		if err := cw.Write([]string{rec.SupplierName, number, rec.InvoiceDate, total, rec.Status}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
