// Package accounting posts approved invoices to the accounting API as draft
// bills. The OAuth token exchange lives elsewhere; this client only needs an
// already-resolved token source.
package accounting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"invoicedesk/internal/entity"
	"invoicedesk/internal/export"
)

type Config struct {
	BaseURL     string
	TenantID    string
	AccessToken string // used when no TokenSource is supplied
	Timeout     time.Duration
}

type Client struct {
	base   string
	tenant string
	http   *http.Client
	logger *slog.Logger
}

// NewClient builds a client whose transport injects bearer tokens from ts.
// Pass nil to use a static token from cfg.AccessToken.
func NewClient(cfg Config, ts oauth2.TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if ts == nil {
		ts = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
	}
	hc := oauth2.NewClient(context.Background(), ts)
	if cfg.Timeout > 0 {
		hc.Timeout = cfg.Timeout
	} else {
		hc.Timeout = 30 * time.Second
	}
	return &Client{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		tenant: cfg.TenantID,
		http:   hc,
		logger: logger,
	}
}

// PostDraftInvoice validates the record's accounting payload and posts it.
// Returns the raw response body so callers can surface API messages.
func (c *Client) PostDraftInvoice(ctx context.Context, rec *entity.InvoiceRecord) ([]byte, error) {
	if c.base == "" {
		return nil, fmt.Errorf("accounting base URL not configured")
	}

	payload := export.BuildPayload(rec)
	bs, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	if err := export.ValidatePayload(bs); err != nil {
		return nil, err
	}

	reqID := uuid.New().String()
	start := time.Now()
	url := c.base + "/Invoices"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tenant != "" {
		req.Header.Set("Xero-Tenant-Id", c.tenant)
	}

	c.logger.Info("accounting.post.request",
		"req_id", reqID,
		"invoice_id", rec.ID.String(),
		"content_length", len(bs),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("accounting.post.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("accounting.post.body_close_error", "req_id", reqID, "error", cerr)
		}
	}()

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Info("accounting.post.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return raw, fmt.Errorf("non-2xx status: %d", resp.StatusCode)
	}
	return raw, nil
}
