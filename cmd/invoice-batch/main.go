package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"invoicedesk/internal/common"
	"invoicedesk/internal/export"
	"invoicedesk/internal/extract"
	"invoicedesk/internal/ingest"
	"invoicedesk/internal/normalize"
	"invoicedesk/internal/pipeline"
	"invoicedesk/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir     = flag.String("dir", "", "directory to process invoice PDFs from (required)")
		outCSV  = flag.String("csv", "", "output CSV file path (optional, defaults next to the directory)")
		outXLSX = flag.String("xlsx", "", "output XLSX file path (optional, defaults next to the directory)")
		inmem   = flag.Bool("inmem", false, "use an in-memory SQLite database")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *outCSV == "" {
		*outCSV = filepath.Join(filepath.Dir(*dir), "invoices.csv")
	}
	if *outXLSX == "" {
		*outXLSX = filepath.Join(filepath.Dir(*dir), "invoices.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; env vars win either way
	_ = godotenv.Load()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbCfg := repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}
	if *inmem {
		dbCfg.DSN = ":memory:"
	}
	store, err := repository.Open(ctx, dbCfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close(logger)

	extractor, err := extract.NewDocAIClient(ctx, extract.Config{
		ProjectID:   cfg.Extraction.ProjectID,
		Location:    cfg.Extraction.Location,
		ProcessorID: cfg.Extraction.ProcessorID,
		MimeType:    cfg.Extraction.MimeType,
	}, logger)
	if err != nil {
		logger.Error("failed to build extraction client", "error", err)
		os.Exit(1)
	}

	repo := repository.NewInvoiceRepository(store, logger)
	normalizer := normalize.NewNormalizer(cfg.Defaults.CurrencyCode, cfg.Defaults.AccountCode)
	processor := pipeline.NewProcessor(extractor, normalizer, repo, logger)

	files, err := ingest.ListPDFs(*dir)
	if err != nil {
		logger.Error("failed to scan directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	logger.Info("starting batch", "dir", *dir, "files", len(files))

	processed := 0
	failures := 0
	for _, path := range files {
		fctx, cancel := context.WithTimeout(ctx, cfg.Extraction.Timeout)
		_, err := processor.ProcessFile(fctx, path)
		cancel()
		if err != nil {
			failures++
			continue
		}
		processed++
	}

	recs, err := repo.List(ctx)
	if err != nil {
		logger.Error("failed to list records", "error", err)
		os.Exit(1)
	}

	csvFile, err := os.Create(*outCSV)
	if err != nil {
		logger.Error("failed to create CSV", "path", *outCSV, "error", err)
		os.Exit(1)
	}
	if err := export.WriteCSV(csvFile, recs...); err != nil {
		logger.Error("failed to write CSV", "path", *outCSV, "error", err)
		os.Exit(1)
	}
	if err := csvFile.Close(); err != nil {
		logger.Error("failed to close CSV", "path", *outCSV, "error", err)
		os.Exit(1)
	}

	xlsxBytes, err := export.WriteXLSX(recs)
	if err != nil {
		logger.Error("failed to build XLSX", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outXLSX, xlsxBytes, 0o644); err != nil {
		logger.Error("failed to write XLSX", "path", *outXLSX, "error", err)
		os.Exit(1)
	}

	logger.Info("batch complete",
		"files", len(files),
		"processed", processed,
		"failures", failures,
		"csv", *outCSV,
		"xlsx", *outXLSX,
	)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files found: %d\n", len(files))
	fmt.Printf("- Processed: %d\n", processed)
	fmt.Printf("- Failures: %d\n", failures)
	fmt.Printf("- CSV: %s\n", *outCSV)
	fmt.Printf("- XLSX: %s\n", *outXLSX)
}
