package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// Store wraps the SQL handle plus the pgx pool when running on Postgres.
// Queries are written with ? placeholders and rebound per dialect.
type Store struct {
	DB       *sql.DB
	pool     *pgxpool.Pool
	postgres bool
}

// Open connects to Postgres (postgres:// DSNs, via a pgx pool) or SQLite
// (anything else is treated as a file path; ":memory:" works for throwaway
// runs). The SQLite schema is created on open; Postgres schemas are managed
// out of band.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return openPostgres(ctx, cfg, logger)
	}
	return openSQLite(cfg.DSN, logger)
}

func openPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	logger.Info("connecting to database", "driver", "postgres")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "invoicedesk"

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	db := stdlib.OpenDBFromPool(pool)
	logger.Info("successfully connected to database")
	return &Store{DB: db, pool: pool, postgres: true}, nil
}

func openSQLite(path string, logger *slog.Logger) (*Store, error) {
	logger.Info("connecting to database", "driver", "sqlite", "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{DB: db}, nil
}

// Close closes the database connections gracefully
func (s *Store) Close(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := s.DB.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
	if s.pool != nil {
		s.pool.Close()
	}
	logger.Info("database connections closed")
}

// HealthCheck pings the store, through the pool when there is one, to catch
// DSN issues early.
func (s *Store) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if s.pool != nil {
		return s.pool.Ping(ctx)
	}
	return s.DB.PingContext(ctx)
}

// Rebind converts ? placeholders to $n for Postgres; SQLite takes them as-is.
func (s *Store) Rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS invoices (
  id TEXT PRIMARY KEY,
  supplier_name TEXT NOT NULL DEFAULT '',
  invoice_number TEXT,
  invoice_date TEXT NOT NULL DEFAULT '',
  due_date TEXT,
  currency_code TEXT NOT NULL DEFAULT '',
  total_amount REAL,
  status TEXT NOT NULL,
  raw_json TEXT NOT NULL DEFAULT '',
  original_filename TEXT NOT NULL DEFAULT '',
  error_message TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invoices_created ON invoices(created_at);

CREATE TABLE IF NOT EXISTS line_items (
  invoice_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  description TEXT NOT NULL,
  quantity REAL NOT NULL,
  unit_amount REAL NOT NULL,
  account_code TEXT NOT NULL,
  PRIMARY KEY (invoice_id, position),
  FOREIGN KEY (invoice_id) REFERENCES invoices(id)
);
`
