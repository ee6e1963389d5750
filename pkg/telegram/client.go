package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/premiumhub/pkg/webhook"
)

// Client sends plain-text messages through the Bot API.
type Client struct {
	endpoint string
	sender   *webhook.Sender
}

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	onDelivery webhook.DeliveryHook
}

// WithHTTPClient replaces the sender's pooled client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithOnDelivery observes every HTTP attempt, retries included.
func WithOnDelivery(hook webhook.DeliveryHook) Option {
	return func(o *options) { o.onDelivery = hook }
}

// NewClient returns a Client for cfg.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BotToken == "" {
		return nil, ErrMissingToken
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.telegram.org"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	limiter := rate.NewLimiter(limit, max(cfg.Burst, 1))

	c := &Client{
		endpoint: fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(cfg.BaseURL, "/"), cfg.BotToken),
	}
	senderOpts := []webhook.SenderOption{
		webhook.WithTimeout(cfg.Timeout),
		webhook.WithExponentialRetry(max(cfg.MaxRetries, 0), cfg.RetryBase, cfg.RetryMax),
		webhook.WithAttemptGate(limiter.Wait),
		webhook.WithHTTPClient(o.httpClient),
		webhook.WithOnDelivery(o.onDelivery),
	}
	if cfg.BreakerThreshold > 0 {
		breaker := webhook.NewCircuitBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown)
		senderOpts = append(senderOpts, webhook.WithCircuitBreaker(breaker))
	}
	c.sender = webhook.NewSender(senderOpts...)
	return c, nil
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// SendMessage delivers text to chatID. Every attempt waits for the outbound
// rate limiter, so a cancelled ctx aborts queued sends. Transient API errors
// are retried; any final failure wraps ErrSendFailed.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	if chatID == "" {
		return ErrInvalidChat
	}

	var out apiResponse
	if err := c.sender.Send(ctx, c.endpoint, sendMessageRequest{ChatID: chatID, Text: text}, &out); err != nil {
		var se *webhook.StatusError
		if errors.As(err, &se) && json.Unmarshal(se.Body, &out) == nil && out.Description != "" {
			return fmt.Errorf("%w: status %d: %s", ErrSendFailed, se.StatusCode, out.Description)
		}
		return errors.Join(ErrSendFailed, err)
	}
	if !out.OK {
		return fmt.Errorf("%w: %s", ErrSendFailed, out.Description)
	}
	return nil
}

