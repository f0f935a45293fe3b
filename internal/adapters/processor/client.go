package processor

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	"github.com/civicgift/donate-backend/internal/platform/config"
)

// Client talks to the payment gateway's server-to-server JSON API and
// implements clients.Processor.
type Client struct {
	baseURL    string
	merchantID string
	publicKey  string
	privateKey string
	httpClient *http.Client
}

var _ clients.Processor = (*Client)(nil)

// NewClient builds a gateway client from configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.ProcessorBaseURL, "/"),
		merchantID: cfg.ProcessorMerchantID,
		publicKey:  cfg.ProcessorPublicKey,
		privateKey: cfg.ProcessorPrivateKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type apiError struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode gateway request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.SetBasicAuth(c.publicKey, c.privateKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		var apiErr apiError
		if err := json.Unmarshal(payload, &apiErr); err != nil {
			return fmt.Errorf("gateway rejected %s %s with unreadable body", method, path)
		}
		return &clients.DeclinedError{Status: apiErr.Status, Code: apiErr.Code, Message: apiErr.Message}
	case resp.StatusCode >= 400:
		return fmt.Errorf("gateway returned %d for %s %s: %s", resp.StatusCode, method, path, strings.TrimSpace(string(payload)))
	}

	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("failed to decode gateway response for %s %s: %w", method, path, err)
		}
	}
	return nil
}

// GenerateClientToken returns a short-lived hosted-fields token.
func (c *Client) GenerateClientToken(ctx context.Context) (string, error) {
	var out struct {
		ClientToken string `json:"clientToken"`
	}
	if err := c.do(ctx, http.MethodPost, "/merchants/"+c.merchantID+"/client-token", nil, &out); err != nil {
		return "", err
	}
	return out.ClientToken, nil
}

// CreateCustomer vaults the donor's payment method.
func (c *Client) CreateCustomer(ctx context.Context, input clients.CustomerInput) (string, error) {
	body := map[string]string{
		"firstName":          input.FirstName,
		"lastName":           input.LastName,
		"email":              input.Email,
		"phone":              input.Phone,
		"paymentMethodNonce": input.PaymentMethodNonce,
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/merchants/"+c.merchantID+"/customers", body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// CreateSale charges a one-time sale and submits it for settlement.
func (c *Client) CreateSale(ctx context.Context, input clients.SaleInput) (*clients.Sale, error) {
	body := map[string]any{
		"amount":             input.Amount,
		"customerId":         input.CustomerID,
		"paymentMethodNonce": input.PaymentMethodNonce,
		"merchantAccountId":  input.MerchantAccountID,
		"options": map[string]bool{
			"submitForSettlement": true,
		},
	}
	if input.BillingPostalCode != "" {
		body["billing"] = map[string]string{"postalCode": input.BillingPostalCode}
	}
	var sale clients.Sale
	if err := c.do(ctx, http.MethodPost, "/merchants/"+c.merchantID+"/transactions", body, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// CreateSubscription starts recurring billing against a vaulted payment
// method.
func (c *Client) CreateSubscription(ctx context.Context, input clients.SubscriptionInput) (string, *clients.Sale, error) {
	body := map[string]any{
		"paymentMethodToken": input.PaymentMethodToken,
		"planId":             input.PlanID,
		"price":              input.Amount,
		"merchantAccountId":  input.MerchantAccountID,
	}
	var out struct {
		ID           string          `json:"id"`
		Transactions []clients.Sale  `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodPost, "/merchants/"+c.merchantID+"/subscriptions", body, &out); err != nil {
		return "", nil, err
	}
	if len(out.Transactions) > 0 {
		return out.ID, &out.Transactions[0], nil
	}
	return out.ID, nil, nil
}

// UpdateSubscription changes the amount, plan or merchant account of an
// active subscription.
func (c *Client) UpdateSubscription(ctx context.Context, subscriptionID string, update clients.SubscriptionUpdate) error {
	body := map[string]any{}
	if update.Amount != nil {
		body["price"] = *update.Amount
	}
	if update.PlanID != "" {
		body["plan_id"] = update.PlanID
	}
	if update.MerchantAccountID != "" {
		body["merchant_account_id"] = update.MerchantAccountID
	}
	return c.do(ctx, http.MethodPut, "/merchants/"+c.merchantID+"/subscriptions/"+url.PathEscape(subscriptionID), body, nil)
}

// FindSale fetches one sale with its full status history.
func (c *Client) FindSale(ctx context.Context, saleID string) (*clients.Sale, error) {
	var sale clients.Sale
	if err := c.do(ctx, http.MethodGet, "/merchants/"+c.merchantID+"/transactions/"+url.PathEscape(saleID), nil, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// Refund refunds the given amount of a settled sale.
func (c *Client) Refund(ctx context.Context, saleID string, amount decimal.Decimal) (*clients.Sale, error) {
	body := map[string]any{"amount": amount}
	var sale clients.Sale
	if err := c.do(ctx, http.MethodPost, "/merchants/"+c.merchantID+"/transactions/"+url.PathEscape(saleID)+"/refund", body, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// Void cancels a sale that has not settled yet.
func (c *Client) Void(ctx context.Context, saleID string) (*clients.Sale, error) {
	var sale clients.Sale
	if err := c.do(ctx, http.MethodPost, "/merchants/"+c.merchantID+"/transactions/"+url.PathEscape(saleID)+"/void", nil, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// SearchSales returns sales whose given status timestamp falls inside the
// window.
func (c *Client) SearchSales(ctx context.Context, statusField string, start, end time.Time) ([]clients.Sale, error) {
	body := map[string]any{
		"statusField": statusField,
		"start":       start.UTC().Format(time.RFC3339),
		"end":         end.UTC().Format(time.RFC3339),
	}
	var out struct {
		Transactions []clients.Sale `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodPost, "/merchants/"+c.merchantID+"/transactions/search", body, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

// SearchDisputes returns disputes received inside the window.
func (c *Client) SearchDisputes(ctx context.Context, start, end time.Time) ([]clients.Dispute, error) {
	body := map[string]any{
		"receivedStart": start.UTC().Format(time.RFC3339),
		"receivedEnd":   end.UTC().Format(time.RFC3339),
	}
	var out struct {
		Disputes []clients.Dispute `json:"disputes"`
	}
	if err := c.do(ctx, http.MethodPost, "/merchants/"+c.merchantID+"/disputes/search", body, &out); err != nil {
		return nil, err
	}
	return out.Disputes, nil
}

// ParseWebhook verifies the delivery signature and decodes the payload.
// Signatures are "publicKey|hex(hmac-sha256(payload))"; the public key
// prefix lets the gateway rotate keys without breaking older deliveries.
func (c *Client) ParseWebhook(signature, payload string) (*clients.WebhookNotification, error) {
	parts := strings.SplitN(signature, "|", 2)
	if len(parts) != 2 || parts[0] != c.publicKey {
		return nil, clients.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(c.privateKey))
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return nil, clients.ErrInvalidSignature
	}

	var notification clients.WebhookNotification
	if err := json.Unmarshal([]byte(payload), &notification); err != nil {
		return nil, fmt.Errorf("failed to decode webhook payload: %w", err)
	}
	return &notification, nil
}
