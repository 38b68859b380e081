package accounting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"invoicedesk/constants"
	"invoicedesk/internal/entity"
)

func sampleRecord() *entity.InvoiceRecord {
	total := 123.45
	now := time.Now().UTC()
	return &entity.InvoiceRecord{
		ID: uuid.New(),
		Invoice: entity.Invoice{
			SupplierName: "Acme Ltd",
			InvoiceDate:  "2024-03-07",
			CurrencyCode: "GBP",
			TotalAmount:  &total,
			LineItems:    []entity.LineItem{{Description: "Bolt", Quantity: 3, UnitAmount: 1, AccountCode: "400"}},
		},
		Status:    constants.StatusReviewed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostDraftInvoice(t *testing.T) {
	var gotAuth, gotTenant string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/Invoices" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotTenant = r.Header.Get("Xero-Tenant-Id")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Status":"OK"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, TenantID: "tenant-1", AccessToken: "test-token"}, nil, nil)
	raw, err := c.PostDraftInvoice(context.Background(), sampleRecord())
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if string(raw) != `{"Status":"OK"}` {
		t.Fatalf("body = %q", raw)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotTenant != "tenant-1" {
		t.Fatalf("tenant = %q", gotTenant)
	}
	if gotBody["Type"] != "ACCPAY" {
		t.Fatalf("posted body = %v", gotBody)
	}
}

func TestPostDraftInvoiceNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"Message":"bad invoice"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, AccessToken: "t"}, nil, nil)
	raw, err := c.PostDraftInvoice(context.Background(), sampleRecord())
	if err == nil {
		t.Fatal("expected error")
	}
	if string(raw) != `{"Message":"bad invoice"}` {
		t.Fatalf("body = %q", raw)
	}
}

func TestPostDraftInvoiceInvalidPayload(t *testing.T) {
	rec := sampleRecord()
	rec.CurrencyCode = "" // fails schema before any request is made

	c := NewClient(Config{BaseURL: "http://127.0.0.1:0", AccessToken: "t"}, nil, nil)
	if _, err := c.PostDraftInvoice(context.Background(), rec); err == nil {
		t.Fatal("expected schema validation error")
	}
}
