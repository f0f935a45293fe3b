package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	"github.com/civicgift/donate-backend/internal/platform/config"
)

// Client sends email through the notification service's JSON API and
// implements clients.Notifier.
type Client struct {
	baseURL    string
	adminEmail string
	httpClient *http.Client
}

var _ clients.Notifier = (*Client)(nil)

// NewClient builds a notifier client from configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.NotifierBaseURL, "/"),
		adminEmail: cfg.AdminEmail,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notification request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("notification service returned %d for %s", resp.StatusCode, path)
	}
	return nil
}

// SendReceipt emails a donation receipt to the donor.
func (c *Client) SendReceipt(ctx context.Context, receipt clients.ReceiptEmail) error {
	return c.post(ctx, "/email/receipt", receipt)
}

// SendAdminNotice emails the operations inbox.
func (c *Client) SendAdminNotice(ctx context.Context, subject, body string) error {
	return c.post(ctx, "/email/send", map[string]string{
		"to":      c.adminEmail,
		"subject": subject,
		"body":    body,
	})
}

// SendReportSummary emails the reconciliation summary with links to the
// uploaded report files.
func (c *Client) SendReportSummary(ctx context.Context, subject string, reportURLs map[string]string) error {
	return c.post(ctx, "/email/report-summary", map[string]any{
		"to":      c.adminEmail,
		"subject": subject,
		"reports": reportURLs,
	})
}
