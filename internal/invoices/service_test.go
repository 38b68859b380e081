package invoices

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"invoicedesk/constants"
	"invoicedesk/internal/entity"
	"invoicedesk/internal/repository"
)

func sp(v string) *string { return &v }

func newTestService(t *testing.T) (*Service, uuid.UUID) {
	t.Helper()
	store, err := repository.Open(context.Background(), repository.Config{DSN: filepath.Join(t.TempDir(), "test.db")}, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close(nil) })
	repo := repository.NewInvoiceRepository(store, nil)

	total := 123.45
	now := time.Now().UTC()
	rec := &entity.InvoiceRecord{
		ID: uuid.New(),
		Invoice: entity.Invoice{
			SupplierName: "Acme Ltd",
			InvoiceDate:  "2024-03-07",
			CurrencyCode: "GBP",
			TotalAmount:  &total,
			LineItems:    []entity.LineItem{{Description: "Bolt", Quantity: 3, UnitAmount: 1, AccountCode: "400"}},
		},
		Status:    constants.StatusPendingReview,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	return NewService(repo, nil), rec.ID
}

func TestApplyEdits(t *testing.T) {
	svc, id := newTestService(t)

	got, err := svc.ApplyEdits(context.Background(), id, HeaderEdits{
		SupplierName: sp("Acme Limited,;"),
		InvoiceDate:  sp("21/03/2024"),
		TotalAmount:  sp("£200.00"),
		Status:       sp(constants.StatusReviewed),
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.SupplierName != "Acme Limited" {
		t.Fatalf("supplier = %q", got.SupplierName)
	}
	if got.InvoiceDate != "2024-03-21" {
		t.Fatalf("date = %q", got.InvoiceDate)
	}
	if got.TotalAmount == nil || *got.TotalAmount != 200 {
		t.Fatalf("total = %v", got.TotalAmount)
	}
	if got.Status != constants.StatusReviewed {
		t.Fatalf("status = %q", got.Status)
	}
	// untouched fields survive
	if len(got.LineItems) != 1 {
		t.Fatalf("line items = %+v", got.LineItems)
	}
}

func TestApplyEditsBadAmountKeepsPrevious(t *testing.T) {
	svc, id := newTestService(t)

	got, err := svc.ApplyEdits(context.Background(), id, HeaderEdits{
		TotalAmount: sp("not a number"),
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.TotalAmount == nil || *got.TotalAmount != 123.45 {
		t.Fatalf("total = %v, want previous value kept", got.TotalAmount)
	}
}

func TestApplyEditsPartial(t *testing.T) {
	svc, id := newTestService(t)

	got, err := svc.ApplyEdits(context.Background(), id, HeaderEdits{
		InvoiceNumber: sp("  INV-7  "),
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.InvoiceNumber == nil || *got.InvoiceNumber != "INV-7" {
		t.Fatalf("number = %v", got.InvoiceNumber)
	}
	// everything else untouched
	if got.SupplierName != "Acme Ltd" || got.InvoiceDate != "2024-03-07" || got.Status != constants.StatusPendingReview {
		t.Fatalf("got %+v", got)
	}
}

func TestApplyEditsMissingRecord(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.ApplyEdits(context.Background(), uuid.New(), HeaderEdits{}); err == nil {
		t.Fatal("expected error for missing record")
	}
}
