// Package pipeline runs one uploaded document end to end: extraction,
// normalization, persistence.
package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"invoicedesk/constants"
	"invoicedesk/internal/entity"
	"invoicedesk/internal/extract"
	"invoicedesk/internal/normalize"
	"invoicedesk/internal/repository"
)

// Processor coordinates extraction (file -> entities) and normalization
// (entities -> invoice), then persists the result.
type Processor struct {
	extractor  extract.Extractor
	normalizer *normalize.Normalizer
	invoices   repository.InvoiceRepository
	logger     *slog.Logger
}

func NewProcessor(extractor extract.Extractor, normalizer *normalize.Normalizer, invoices repository.InvoiceRepository, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		extractor:  extractor,
		normalizer: normalizer,
		invoices:   invoices,
		logger:     logger,
	}
}

// ProcessFile extracts and normalizes one document and creates its record.
// When extraction fails the upload is not lost: an empty record is still
// created, carrying the error message, so the reviewer can fill the fields in
// by hand. In that case the created record is returned together with the
// extraction error.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*entity.InvoiceRecord, error) {
	start := time.Now()

	res, err := p.extractor.Extract(ctx, path)
	if err != nil {
		p.logger.Error("pipeline.extract.failed", "path", path, "error", err)
		rec := p.newRecord(path)
		rec.Invoice, _ = p.normalizer.Normalize(nil)
		rec.Status = constants.StatusExtractionFailed
		rec.ErrorMessage = err.Error()
		if cerr := p.invoices.Create(ctx, rec); cerr != nil {
			return nil, cerr
		}
		return rec, err
	}

	inv, diags := p.normalizer.Normalize(res.Entities)
	for _, d := range diags {
		p.logger.Warn("pipeline.normalize.fallback", "path", path, "field", d.Field, "reason", d.Reason)
	}

	rec := p.newRecord(path)
	rec.Invoice = inv
	rec.Status = constants.StatusPendingReview
	if raw, err := json.Marshal(res.Entities); err == nil {
		rec.RawJSON = string(raw)
	}

	if err := p.invoices.Create(ctx, rec); err != nil {
		return nil, err
	}

	p.logger.Info("pipeline.process.ok",
		"id", rec.ID,
		"path", path,
		"supplier", inv.SupplierName,
		"date", inv.InvoiceDate,
		"line_items", len(inv.LineItems),
		"fallbacks", len(diags),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}

func (p *Processor) newRecord(path string) *entity.InvoiceRecord {
	now := time.Now().UTC()
	return &entity.InvoiceRecord{
		ID:               uuid.New(),
		OriginalFilename: filepath.Base(path),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
