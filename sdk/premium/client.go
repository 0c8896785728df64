package premium

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"finmate/internal/domain/premium"
)

var (
	// ErrUnauthorized means the bearer token was missing, expired or rejected.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnparseable means the backend answered 2xx but the body did not
	// match the expected envelope. Callers treat it like a failed load.
	ErrUnparseable = errors.New("unparseable response")
)

// Client is the typed wrapper around the premium subscription endpoints.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a premium API client.
//
// Parameters:
//   - baseURL: the API base URL (e.g., "https://api.finmate.app")
//   - token: the user's bearer token; may be empty for unauthenticated use
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken swaps the bearer token after a login or logout.
func (c *Client) SetToken(token string) {
	c.token = token
}

// subscriptionDTO mirrors the wire shape of one subscription record.
type subscriptionDTO struct {
	Plan        string    `json:"plan"`
	PurchasedAt time.Time `json:"purchasedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
	IsActive    bool      `json:"isActive"`
}

// subscriptionEnvelope is the single normalization point for subscription
// responses. Anything that does not decode into it is ErrUnparseable.
type subscriptionEnvelope struct {
	Subscription *subscriptionDTO `json:"subscription"`
}

func (e *subscriptionEnvelope) status() *premium.Status {
	sub := e.Subscription
	if sub == nil || !sub.IsActive {
		return nil
	}
	return &premium.Status{
		Plan:        premium.ParsePlan(sub.Plan),
		PurchasedAt: sub.PurchasedAt,
		ExpiresAt:   sub.ExpiresAt,
	}
}

// FetchSubscription reads the authoritative entitlement for the current
// user. A nil status with nil error means no active entitlement.
func (c *Client) FetchSubscription(ctx context.Context) (*premium.Status, error) {
	var envelope subscriptionEnvelope
	if err := c.doRequest(ctx, http.MethodGet, "/premium/subscription", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.status(), nil
}

// PurchaseRequest is the payload for a plan purchase or extension.
type PurchaseRequest struct {
	Plan          string  `json:"plan"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	TransactionID *string `json:"transactionId,omitempty"`
	VoucherCode   string  `json:"voucherCode,omitempty"`
}

// Purchase submits a purchase and returns the entitlement the server
// persisted. The server owns badge precedence and expiry accrual.
func (c *Client) Purchase(ctx context.Context, req PurchaseRequest) (*premium.Status, error) {
	var envelope subscriptionEnvelope
	if err := c.doRequest(ctx, http.MethodPost, "/premium/subscription", req, &envelope); err != nil {
		return nil, err
	}
	status := envelope.status()
	if status == nil {
		return nil, fmt.Errorf("%w: purchase response carried no subscription", ErrUnparseable)
	}
	return status, nil
}

// Cancel marks the entitlement inactive server-side. Purchase history
// is kept.
func (c *Client) Cancel(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodDelete, "/premium/subscription", nil, nil)
}

// History returns past subscription records, newest first.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	var envelope struct {
		Subscriptions []HistoryEntry `json:"subscriptions"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/premium/subscription/history", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Subscriptions, nil
}

// HistoryEntry is one row of the purchase history.
type HistoryEntry struct {
	ID            uint      `json:"id"`
	Plan          string    `json:"plan"`
	PurchasedAt   time.Time `json:"purchasedAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
	IsActive      bool      `json:"isActive"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return nil
}
