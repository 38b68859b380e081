// Package invoices applies reviewer edits to persisted invoice records.
// Only header fields are editable; line items and the raw extracted payload
// are fixed at creation.
package invoices

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"invoicedesk/internal/entity"
	"invoicedesk/internal/normalize"
	"invoicedesk/internal/repository"
)

// HeaderEdits carries reviewer-submitted header values. A nil field means
// "leave unchanged"; a present field is sanitized the same way extraction
// output is.
type HeaderEdits struct {
	SupplierName  *string
	InvoiceNumber *string
	InvoiceDate   *string
	DueDate       *string
	TotalAmount   *string // free text, re-parsed
	Status        *string
}

type Service struct {
	repo   repository.InvoiceRepository
	logger *slog.Logger
}

func NewService(repo repository.InvoiceRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ApplyEdits applies reviewer edits to the persisted copy. Malformed values
// degrade per field rather than rejecting the whole edit: an unparseable
// amount keeps the previous value, dates are re-normalized (unparseable text
// is kept verbatim, same as extraction), supplier names are re-cleaned, and
// an empty status is ignored.
func (s *Service) ApplyEdits(ctx context.Context, id uuid.UUID, edits HeaderEdits) (*entity.InvoiceRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if edits.SupplierName != nil {
		rec.SupplierName = normalize.CleanSupplier(*edits.SupplierName)
	}
	if edits.InvoiceNumber != nil {
		if v := strings.TrimSpace(*edits.InvoiceNumber); v == "" {
			rec.InvoiceNumber = nil
		} else {
			rec.InvoiceNumber = &v
		}
	}
	if edits.InvoiceDate != nil {
		rec.InvoiceDate = normalize.NormalizeDate(*edits.InvoiceDate)
	}
	if edits.DueDate != nil {
		if v := normalize.NormalizeDate(*edits.DueDate); v == "" {
			rec.DueDate = nil
		} else {
			rec.DueDate = &v
		}
	}
	if edits.TotalAmount != nil {
		if amt := normalize.ParseAmount(*edits.TotalAmount); amt != nil {
			rec.TotalAmount = amt
		} else {
			s.logger.Warn("invoices.edit.total_ignored", "id", id, "value", *edits.TotalAmount)
		}
	}
	if edits.Status != nil && *edits.Status != "" {
		rec.Status = *edits.Status
	}

	rec.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateHeader(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info("invoices.edit.ok", "id", id, "status", rec.Status)
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.InvoiceRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*entity.InvoiceRecord, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("invoices.delete.ok", "id", id)
	return nil
}
