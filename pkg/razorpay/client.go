package razorpay

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
)

const paymentLinksPath = "/v1/payment_links"

// PaymentLinkRequest is the body of POST /v1/payment_links.
type PaymentLinkRequest struct {
	Amount      int64             `json:"amount"` // minor units, e.g. paise
	Currency    string            `json:"currency"`
	Description string            `json:"description,omitempty"`
	ReferenceID string            `json:"reference_id,omitempty"`
	Notes       map[string]string `json:"notes,omitempty"`
}

// PaymentLink is the subset of the provider response the service uses.
// Raw keeps the full response body.
type PaymentLink struct {
	ID          string            `json:"id"`
	ShortURL    string            `json:"short_url"`
	Status      string            `json:"status"`
	ReferenceID string            `json:"reference_id"`
	Notes       Notes             `json:"notes"`
	Raw         json.RawMessage   `json:"-"`
}

// Client talks to the payment links API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client built from Config.Timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.razorpay.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{cfg: cfg, httpClient: &http.Client{Timeout: cfg.Timeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CreatePaymentLink creates a hosted payment link. Non-2xx responses wrap
// ErrUnexpectedStatus with a snippet of the body.
func (c *Client) CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLink, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+paymentLinksPath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	httpReq.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, snippet(raw))
	}

	var link PaymentLink
	if err := json.Unmarshal(raw, &link); err != nil {
		return nil, errors.Join(ErrDecodeResponse, err)
	}
	link.Raw = raw
	return &link, nil
}

func snippet(b []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
