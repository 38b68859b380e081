package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"invoicedesk/constants"
)

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Extraction ExtractionConfig
	Defaults   DefaultsConfig
	Accounting AccountingConfig
}

// DatabaseConfig holds database-related configuration. DSN is either a
// postgres:// URL or a path to a SQLite file.
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// IsPostgres reports whether the DSN points at a Postgres server.
func (d DatabaseConfig) IsPostgres() bool {
	return strings.HasPrefix(d.DSN, "postgres://") || strings.HasPrefix(d.DSN, "postgresql://")
}

// ExtractionConfig identifies the Document AI processor used for extraction.
type ExtractionConfig struct {
	ProjectID   string
	Location    string
	ProcessorID string
	MimeType    string
	Timeout     time.Duration
}

// DefaultsConfig holds the fallback values substituted when the service
// emits nothing usable for a field.
type DefaultsConfig struct {
	CurrencyCode string
	AccountCode  string
}

// AccountingConfig holds the accounting API connection. The access token is
// expected to be already exchanged; this app never runs the OAuth dance.
type AccountingConfig struct {
	BaseURL     string
	TenantID    string
	AccessToken string
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", "invoices.db"),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Extraction: ExtractionConfig{
			ProjectID:   getEnv("PROJECT_ID", ""),
			Location:    getEnv("LOCATION", "eu"),
			ProcessorID: getEnv("PROCESSOR_ID", ""),
			MimeType:    getEnv("MIME_TYPE", "application/pdf"),
			Timeout:     getEnvAsDuration("EXTRACTION_TIMEOUT", 2*time.Minute),
		},
		Defaults: DefaultsConfig{
			CurrencyCode: getEnv("DEFAULT_CURRENCY", constants.DefaultCurrencyCode),
			AccountCode:  getEnv("DEFAULT_ACCOUNT_CODE", constants.DefaultAccountCode),
		},
		Accounting: AccountingConfig{
			BaseURL:     getEnv("ACCOUNTING_BASE_URL", ""),
			TenantID:    getEnv("ACCOUNTING_TENANT_ID", ""),
			AccessToken: getEnv("ACCOUNTING_ACCESS_TOKEN", ""),
			Timeout:     getEnvAsDuration("ACCOUNTING_TIMEOUT", 30*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the keys required to reach the extraction service and the
// store. Accounting keys are optional; posting is validated at call time.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Extraction.ProjectID == "" {
		return NewAppError("CONFIG_ERROR", "PROJECT_ID is required", ErrInvalidInput)
	}
	if c.Extraction.ProcessorID == "" {
		return NewAppError("CONFIG_ERROR", "PROCESSOR_ID is required", ErrInvalidInput)
	}
	return nil
}
