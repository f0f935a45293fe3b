package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	"github.com/civicgift/donate-backend/internal/platform/config"
)

// Client stores report files in the blob service and implements
// clients.Blobstore.
type Client struct {
	baseURL    string
	bucket     string
	httpClient *http.Client
}

var _ clients.Blobstore = (*Client)(nil)

// NewClient builds a blobstore client from configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BlobstoreBaseURL, "/"),
		bucket:     cfg.BlobstoreBucket,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload stores content under key and returns a URL the summary email can
// link to.
func (c *Client) Upload(ctx context.Context, key, contentType string, content []byte) (string, error) {
	target := fmt.Sprintf("%s/buckets/%s/objects/%s", c.baseURL, url.PathEscape(c.bucket), url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request for %s: %w", key, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload of %s failed: %w", key, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response for %s: %w", key, err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("blobstore returned %d for %s", resp.StatusCode, key)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", fmt.Errorf("failed to decode upload response for %s: %w", key, err)
	}
	return out.URL, nil
}
