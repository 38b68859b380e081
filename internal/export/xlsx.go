package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"invoicedesk/internal/entity"
)

// WriteXLSX returns an XLSX workbook (as bytes) with one row per record.
// Like the CSV export it is header-only; line-item detail stays in the JSON
// payload.
func WriteXLSX(recs []*entity.InvoiceRecord) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Invoices"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Supplier",
		"Invoice Number",
		"Invoice Date",
		"Due Date",
		"Currency",
		"Total",
		"Status",
		"Source File",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, rec := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, rec.SupplierName)
		if rec.InvoiceNumber != nil {
			write(2, *rec.InvoiceNumber)
		}
		write(3, rec.InvoiceDate)
		if rec.DueDate != nil {
			write(4, *rec.DueDate)
		}
		write(5, rec.CurrencyCode)
		if rec.TotalAmount != nil {
			write(6, fmt.Sprintf("%.2f", *rec.TotalAmount))
		}
		write(7, rec.Status)
		write(8, rec.OriginalFilename)

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 28) // supplier
	_ = f.SetColWidth(sheet, "B", "B", 18) // number
	_ = f.SetColWidth(sheet, "C", "D", 14) // dates
	_ = f.SetColWidth(sheet, "E", "F", 12) // currency, total
	_ = f.SetColWidth(sheet, "G", "G", 18) // status
	_ = f.SetColWidth(sheet, "H", "H", 40) // file

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
