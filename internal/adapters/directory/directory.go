package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	"github.com/civicgift/donate-backend/internal/platform/config"
)

// Client reads and writes donor identities in the external user directory
// and implements clients.UserDirectory.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ clients.UserDirectory = (*Client)(nil)

// NewClient builds a directory client from configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.DirectoryBaseURL, "/"),
		apiKey:     cfg.DirectoryAPIKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode directory request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build directory request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("directory request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read directory response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("directory returned %d for %s %s", resp.StatusCode, method, path)
	}
	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("failed to decode directory response: %w", err)
		}
	}
	return nil
}

// FindUser returns users matching the search, empty when none match.
func (c *Client) FindUser(ctx context.Context, search clients.DirectorySearch) ([]domain.DirectoryUser, error) {
	params := url.Values{}
	if search.UserID != 0 {
		params.Set("id", strconv.FormatInt(search.UserID, 10))
	}
	if search.Email != "" {
		params.Set("email", search.Email)
	}
	if search.LastName != "" {
		params.Set("lastname", search.LastName)
	}
	var out struct {
		Users []domain.DirectoryUser `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/users?"+params.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// CreateUser registers a new donor.
func (c *Client) CreateUser(ctx context.Context, user domain.DirectoryUser) (*domain.DirectoryUser, error) {
	var created domain.DirectoryUser
	if err := c.do(ctx, http.MethodPost, "/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser overwrites donation statistics on an existing donor.
func (c *Client) UpdateUser(ctx context.Context, user domain.DirectoryUser) (*domain.DirectoryUser, error) {
	var updated domain.DirectoryUser
	if err := c.do(ctx, http.MethodPut, "/users/"+strconv.FormatInt(user.ID, 10), user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
