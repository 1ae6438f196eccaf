package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/scandine/ordering-service/internal/config"
)

// Client talks to the payment provider's order API over HTTP. Creating a
// remote order reserves a payment the customer completes in their browser;
// the returned id is stored on the local payment attempt.
type Client struct {
	name       string
	baseURL    string
	keyID      string
	keySecret  string
	currency   string
	httpClient *http.Client
}

// NewClient creates a gateway client from configuration
func NewClient(cfg config.Gateway) *Client {
	return &Client{
		name:       cfg.Name,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		currency:   cfg.Currency,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Name returns the provider name recorded on payment attempts
func (c *Client) Name() string {
	return c.name
}

// Currency returns the settlement currency
func (c *Client) Currency() string {
	return c.currency
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateRemoteOrder registers a payment order with the provider and returns
// its id. Amount is in minor units (e.g. paise, cents).
func (c *Client) CreateRemoteOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (string, error) {
	payload, err := json.Marshal(createOrderRequest{
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return "", fmt.Errorf("gateway order marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gateway order request build: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway order request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gateway order failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var orderResp createOrderResponse
	if err := json.Unmarshal(body, &orderResp); err != nil {
		return "", fmt.Errorf("gateway order unmarshal: %w", err)
	}
	if orderResp.ID == "" {
		return "", errors.New("gateway order: empty order id")
	}

	return orderResp.ID, nil
}
