package extract

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"time"

	documentai "google.golang.org/api/documentai/v1"
	"google.golang.org/api/option"

	"invoicedesk/internal/entity"
)

// Config identifies the Document AI processor to call.
type Config struct {
	ProjectID   string
	Location    string
	ProcessorID string
	MimeType    string
}

// DocAIClient wraps the Google Document AI invoice processor. It sends the
// raw file bytes inline and flattens the returned entities into
// (field-type, text) pairs.
type DocAIClient struct {
	svc    *documentai.Service
	name   string // full processor resource name
	mime   string
	logger *slog.Logger
}

// NewDocAIClient builds a client pinned to the processor's regional endpoint.
// Credentials come from the environment (application default credentials)
// unless overridden via opts.
func NewDocAIClient(ctx context.Context, cfg Config, logger *slog.Logger, opts ...option.ClientOption) (*DocAIClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	endpoint := fmt.Sprintf("https://%s-documentai.googleapis.com/", cfg.Location)
	opts = append([]option.ClientOption{option.WithEndpoint(endpoint)}, opts...)
	svc, err := documentai.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("documentai service: %w", err)
	}
	mime := cfg.MimeType
	if mime == "" {
		mime = "application/pdf"
	}
	return &DocAIClient{
		svc:    svc,
		name:   fmt.Sprintf("projects/%s/locations/%s/processors/%s", cfg.ProjectID, cfg.Location, cfg.ProcessorID),
		mime:   mime,
		logger: logger,
	}, nil
}

func (c *DocAIClient) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, &ExtractionError{Message: "read document", Cause: err}
	}

	req := &documentai.GoogleCloudDocumentaiV1ProcessRequest{
		RawDocument: &documentai.GoogleCloudDocumentaiV1RawDocument{
			Content:  base64.StdEncoding.EncodeToString(content),
			MimeType: c.mime,
		},
	}
	resp, err := c.svc.Projects.Locations.Processors.Process(c.name, req).Context(ctx).Do()
	if err != nil {
		c.logger.Error("extract.docai.failed", "path", path, "error", err)
		return Result{}, &ExtractionError{Message: "process document", Cause: err}
	}
	if resp.Document == nil {
		return Result{}, &ExtractionError{Message: "response carried no document"}
	}

	res := Result{Entities: MapDocumentEntities(resp.Document)}
	c.logger.Info("extract.docai.ok",
		"path", path,
		"entities", len(res.Entities),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// MapDocumentEntities flattens the document's entity list into raw
// (field-type, text) pairs, preserving service order. Nested properties are
// not descended into; the invoice processor reports line items as top-level
// "line_item" entities with the full row in the mention text.
func MapDocumentEntities(doc *documentai.GoogleCloudDocumentaiV1Document) []entity.RawEntity {
	out := make([]entity.RawEntity, 0, len(doc.Entities))
	for _, e := range doc.Entities {
		if e == nil || e.Type == "" {
			continue
		}
		out = append(out, entity.RawEntity{FieldType: e.Type, Text: e.MentionText})
	}
	return out
}
