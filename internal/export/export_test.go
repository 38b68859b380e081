package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"invoicedesk/constants"
	"invoicedesk/internal/entity"
)

func sampleRecord() *entity.InvoiceRecord {
	num := "INV-0042"
	due := "2024-03-21"
	total := 123.45
	now := time.Now().UTC()
	return &entity.InvoiceRecord{
		ID: uuid.New(),
		Invoice: entity.Invoice{
			SupplierName:  "Acme Ltd",
			InvoiceNumber: &num,
			InvoiceDate:   "2024-03-07",
			DueDate:       &due,
			CurrencyCode:  "GBP",
			TotalAmount:   &total,
			LineItems: []entity.LineItem{
				{Description: "Bolt", Quantity: 3, UnitAmount: 1, AccountCode: "400"},
			},
		},
		Status:           constants.StatusReviewed,
		OriginalFilename: "acme.pdf",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestBuildPayloadKeys(t *testing.T) {
	data, err := MarshalPayload(sampleRecord())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["Type"] != "ACCPAY" {
		t.Fatalf("Type = %v", m["Type"])
	}
	contact, ok := m["Contact"].(map[string]any)
	if !ok || contact["Name"] != "Acme Ltd" {
		t.Fatalf("Contact = %v", m["Contact"])
	}
	if m["Date"] != "2024-03-07" || m["DueDate"] != "2024-03-21" {
		t.Fatalf("dates = %v / %v", m["Date"], m["DueDate"])
	}
	if m["InvoiceNumber"] != "INV-0042" || m["CurrencyCode"] != "GBP" {
		t.Fatalf("number/currency = %v / %v", m["InvoiceNumber"], m["CurrencyCode"])
	}
	if m["Total"] != 123.45 {
		t.Fatalf("Total = %v", m["Total"])
	}
	items, ok := m["LineItems"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("LineItems = %v", m["LineItems"])
	}
	li := items[0].(map[string]any)
	if li["Description"] != "Bolt" || li["Quantity"] != 3.0 || li["UnitAmount"] != 1.0 || li["AccountCode"] != "400" {
		t.Fatalf("line item = %v", li)
	}
}

func TestValidatePayload(t *testing.T) {
	data, err := MarshalPayload(sampleRecord())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidatePayload(data); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidatePayloadRejectsBadShape(t *testing.T) {
	bad := []byte(`{"Type":"ACCREC","Contact":{"Name":"Acme"},"Date":"2024-03-07","LineItems":[],"CurrencyCode":"GBP"}`)
	if err := ValidatePayload(bad); err == nil {
		t.Fatal("expected validation error for wrong Type")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecord()); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if lines[0] != "supplier_name,invoice_id,invoice_date,total_amount,status" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "Acme Ltd,INV-0042,2024-03-07,123.45,Reviewed" {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestWriteCSVEmptyTotal(t *testing.T) {
	rec := sampleRecord()
	rec.TotalAmount = nil
	rec.InvoiceNumber = nil

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rec); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[1] != "Acme Ltd,,2024-03-07,,Reviewed" {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX([]*entity.InvoiceRecord{sampleRecord()})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty workbook")
	}
}
