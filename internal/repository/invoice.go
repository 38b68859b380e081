package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"invoicedesk/internal/common"
	"invoicedesk/internal/entity"
)

// InvoiceRepository persists normalized invoice records and reviewer edits.
// Reviewer edits go through UpdateHeader and never touch line items.
type InvoiceRepository interface {
	Create(ctx context.Context, rec *entity.InvoiceRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InvoiceRecord, error)
	List(ctx context.Context) ([]*entity.InvoiceRecord, error)
	UpdateHeader(ctx context.Context, rec *entity.InvoiceRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type invoiceRepository struct {
	store  *Store
	logger *slog.Logger
}

func NewInvoiceRepository(store *Store, logger *slog.Logger) InvoiceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &invoiceRepository{store: store, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, rec *entity.InvoiceRecord) error {
	tx, err := r.store.DB.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "begin")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, r.store.Rebind(`
INSERT INTO invoices (
  id, supplier_name, invoice_number, invoice_date, due_date, currency_code,
  total_amount, status, raw_json, original_filename, error_message,
  created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		rec.ID.String(), rec.SupplierName, rec.InvoiceNumber, rec.InvoiceDate,
		rec.DueDate, rec.CurrencyCode, rec.TotalAmount, rec.Status, rec.RawJSON,
		rec.OriginalFilename, rec.ErrorMessage,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return common.NewAppError("DB_ERROR", "insert invoice", err)
	}

	for i, li := range rec.LineItems {
		_, err = tx.ExecContext(ctx, r.store.Rebind(`
INSERT INTO line_items (invoice_id, position, description, quantity, unit_amount, account_code)
VALUES (?, ?, ?, ?, ?, ?)`),
			rec.ID.String(), i, li.Description, li.Quantity, li.UnitAmount, li.AccountCode,
		)
		if err != nil {
			return common.NewAppError("DB_ERROR", "insert line item", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return common.WrapError(err, "commit")
	}
	r.logger.Debug("invoice created", "id", rec.ID, "line_items", len(rec.LineItems))
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InvoiceRecord, error) {
	row := r.store.DB.QueryRowContext(ctx, r.store.Rebind(`
SELECT id, supplier_name, invoice_number, invoice_date, due_date, currency_code,
       total_amount, status, raw_json, original_filename, error_message,
       created_at, updated_at
FROM invoices WHERE id = ?`), id.String())

	rec, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewAppError("NOT_FOUND", fmt.Sprintf("invoice %s", id), common.ErrNotFound)
		}
		return nil, common.NewAppError("DB_ERROR", "query invoice", err)
	}

	if err := r.loadLineItems(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]*entity.InvoiceRecord, error) {
	rows, err := r.store.DB.QueryContext(ctx, `
SELECT id, supplier_name, invoice_number, invoice_date, due_date, currency_code,
       total_amount, status, raw_json, original_filename, error_message,
       created_at, updated_at
FROM invoices ORDER BY created_at DESC`)
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "list invoices", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.InvoiceRecord
	for rows.Next() {
		rec, err := scanInvoice(rows)
		if err != nil {
			return nil, common.NewAppError("DB_ERROR", "scan invoice", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewAppError("DB_ERROR", "list invoices", err)
	}

	for _, rec := range out {
		if err := r.loadLineItems(ctx, rec); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UpdateHeader writes the editable header fields and status. Line items and
// the raw payload are immutable after creation.
func (r *invoiceRepository) UpdateHeader(ctx context.Context, rec *entity.InvoiceRecord) error {
	res, err := r.store.DB.ExecContext(ctx, r.store.Rebind(`
UPDATE invoices SET
  supplier_name = ?, invoice_number = ?, invoice_date = ?, due_date = ?,
  total_amount = ?, status = ?, updated_at = ?
WHERE id = ?`),
		rec.SupplierName, rec.InvoiceNumber, rec.InvoiceDate, rec.DueDate,
		rec.TotalAmount, rec.Status,
		rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
		rec.ID.String(),
	)
	if err != nil {
		return common.NewAppError("DB_ERROR", "update invoice", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.NewAppError("NOT_FOUND", fmt.Sprintf("invoice %s", rec.ID), common.ErrNotFound)
	}
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.store.DB.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "begin")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, r.store.Rebind(`DELETE FROM line_items WHERE invoice_id = ?`), id.String()); err != nil {
		return common.NewAppError("DB_ERROR", "delete line items", err)
	}
	res, err := tx.ExecContext(ctx, r.store.Rebind(`DELETE FROM invoices WHERE id = ?`), id.String())
	if err != nil {
		return common.NewAppError("DB_ERROR", "delete invoice", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.NewAppError("NOT_FOUND", fmt.Sprintf("invoice %s", id), common.ErrNotFound)
	}
	return tx.Commit()
}

func (r *invoiceRepository) loadLineItems(ctx context.Context, rec *entity.InvoiceRecord) error {
	rows, err := r.store.DB.QueryContext(ctx, r.store.Rebind(`
SELECT description, quantity, unit_amount, account_code
FROM line_items WHERE invoice_id = ? ORDER BY position`), rec.ID.String())
	if err != nil {
		return common.NewAppError("DB_ERROR", "query line items", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var li entity.LineItem
		if err := rows.Scan(&li.Description, &li.Quantity, &li.UnitAmount, &li.AccountCode); err != nil {
			return common.NewAppError("DB_ERROR", "scan line item", err)
		}
		rec.LineItems = append(rec.LineItems, li)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*entity.InvoiceRecord, error) {
	var (
		rec       entity.InvoiceRecord
		idStr     string
		createdAt string
		updatedAt string
	)
	err := row.Scan(
		&idStr, &rec.SupplierName, &rec.InvoiceNumber, &rec.InvoiceDate,
		&rec.DueDate, &rec.CurrencyCode, &rec.TotalAmount, &rec.Status,
		&rec.RawJSON, &rec.OriginalFilename, &rec.ErrorMessage,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rec.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("bad invoice id %q: %w", idStr, err)
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("bad updated_at %q: %w", updatedAt, err)
	}
	return &rec, nil
}
