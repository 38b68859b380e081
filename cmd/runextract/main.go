package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"invoicedesk/internal/common"
	"invoicedesk/internal/extract"
	"invoicedesk/internal/normalize"
)

// runextract sends a single PDF through the extraction processor and prints
// the raw entities plus the normalized invoice, without touching the store.
// Useful for checking a processor configuration against a sample document.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runextract <path-to-pdf>")
		os.Exit(2)
	}
	path := os.Args[1]

	_ = godotenv.Load()

	cfg := common.LoadConfig()
	if cfg.Extraction.ProjectID == "" || cfg.Extraction.ProcessorID == "" {
		logger.Error("PROJECT_ID and PROCESSOR_ID are required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Extraction.Timeout)
	defer cancel()

	client, err := extract.NewDocAIClient(ctx, extract.Config{
		ProjectID:   cfg.Extraction.ProjectID,
		Location:    cfg.Extraction.Location,
		ProcessorID: cfg.Extraction.ProcessorID,
		MimeType:    cfg.Extraction.MimeType,
	}, logger)
	if err != nil {
		logger.Error("failed to build extraction client", "error", err)
		os.Exit(1)
	}

	start := time.Now()
	res, err := client.Extract(ctx, path)
	dur := time.Since(start)
	if err != nil {
		logger.Error("extraction failed",
			"path", path, "error", err, "duration_ms", dur.Milliseconds())
		os.Exit(1)
	}

	logger.Info("extraction OK",
		"path", path,
		"entities", len(res.Entities),
		"duration_ms", dur.Milliseconds(),
	)

	normalizer := normalize.NewNormalizer(cfg.Defaults.CurrencyCode, cfg.Defaults.AccountCode)
	inv, diags := normalizer.Normalize(res.Entities)
	for _, d := range diags {
		logger.Warn("normalization fallback", "field", d.Field, "reason", d.Reason)
	}

	out := struct {
		Entities    any `json:"entities"`
		Invoice     any `json:"invoice"`
		Diagnostics any `json:"diagnostics"`
	}{res.Entities, inv, diags}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Error("failed to marshal result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(b))
}
