package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseBody = 64 << 10

// DeliveryResult describes one HTTP attempt made by Sender.
type DeliveryResult struct {
	Attempt    int
	StatusCode int
	Duration   time.Duration
	Err        error
}

// DeliveryHook observes every attempt.
type DeliveryHook func(DeliveryResult)

// StatusError is the failure for a non-2xx response. Body holds the first
// 64 KiB of the response so callers can decode provider error envelopes.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := strings.ReplaceAll(strings.TrimSpace(string(e.Body)), "\n", " ")
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	if msg == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, msg)
}

// Retryable reports whether the same request may succeed later.
func (e *StatusError) Retryable() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests:
		return true
	}
	return e.StatusCode >= 500
}

// Sender POSTs JSON payloads with retries, backoff and an optional circuit
// breaker. It is safe for concurrent use.
type Sender struct {
	client     *http.Client
	timeout    time.Duration
	headers    http.Header
	retries    int
	backoff    BackoffStrategy
	breaker    *CircuitBreaker
	gate       func(context.Context) error
	onDelivery DeliveryHook
}

// SenderOption configures a Sender.
type SenderOption func(*Sender)

// WithHTTPClient replaces the pooled default client.
func WithHTTPClient(c *http.Client) SenderOption {
	return func(s *Sender) {
		if c != nil {
			s.client = c
		}
	}
}

// WithTimeout bounds each attempt (default 10s).
func WithTimeout(d time.Duration) SenderOption {
	return func(s *Sender) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithHeader sets a header on every request.
func WithHeader(key, value string) SenderOption {
	return func(s *Sender) {
		if key != "" {
			s.headers.Set(key, value)
		}
	}
}

// WithRetry allows up to retries extra attempts spaced by backoff.
func WithRetry(retries int, backoff BackoffStrategy) SenderOption {
	return func(s *Sender) {
		s.retries = max(retries, 0)
		if backoff != nil {
			s.backoff = backoff
		}
	}
}

// WithExponentialRetry is WithRetry with jittered exponential backoff.
func WithExponentialRetry(retries int, initial, ceiling time.Duration) SenderOption {
	return WithRetry(retries, ExponentialBackoff{Initial: initial, Max: ceiling, Multiplier: 2, Jitter: 0.1})
}

// WithNoRetry makes every Send a single attempt.
func WithNoRetry() SenderOption {
	return func(s *Sender) { s.retries = 0 }
}

// WithCircuitBreaker guards the endpoint with cb. Share one breaker per endpoint.
func WithCircuitBreaker(cb *CircuitBreaker) SenderOption {
	return func(s *Sender) { s.breaker = cb }
}

// WithAttemptGate runs gate before every attempt, retries included.
// A gate error aborts the send. Used for outbound rate limiting.
func WithAttemptGate(gate func(context.Context) error) SenderOption {
	return func(s *Sender) { s.gate = gate }
}

// WithOnDelivery registers an observer for every attempt.
func WithOnDelivery(hook DeliveryHook) SenderOption {
	return func(s *Sender) { s.onDelivery = hook }
}

// NewSender returns a Sender with three retries and exponential backoff.
func NewSender(opts ...SenderOption) *Sender {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 10

	s := &Sender{
		client:  &http.Client{Transport: transport},
		timeout: 10 * time.Second,
		headers: make(http.Header),
		retries: 3,
		backoff: ExponentialBackoff{Initial: time.Second, Max: 30 * time.Second, Multiplier: 2, Jitter: 0.1},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send marshals payload, POSTs it to target and, on a 2xx response, decodes
// the body into out when out is non-nil.
//
// Transport errors and 408/425/429/5xx responses are retried. Other
// responses fail at once with ErrPermanentFailure and a *StatusError.
// Only retryable failures count against the circuit breaker. Errors never
// contain target, which may embed credentials.
func (s *Sender) Send(ctx context.Context, target string, payload, out any) error {
	if err := validateURL(target); err != nil {
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}

	var lastErr error
	attempts := s.retries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, s.backoff.NextInterval(attempt-1)); err != nil {
				return errors.Join(ErrDeliveryFailed, lastErr, err)
			}
		}
		if !s.breaker.Allow() {
			return errors.Join(ErrDeliveryFailed, ErrCircuitOpen, lastErr)
		}
		if s.gate != nil {
			if err := s.gate(ctx); err != nil {
				return errors.Join(ErrDeliveryFailed, err)
			}
		}

		res := s.attempt(ctx, target, body, out)
		res.Attempt = attempt
		if s.onDelivery != nil {
			s.onDelivery(res)
		}

		if res.Err == nil {
			s.breaker.RecordSuccess()
			return nil
		}
		lastErr = res.Err

		if ctx.Err() != nil {
			return errors.Join(ErrDeliveryFailed, res.Err, ctx.Err())
		}
		if !retryable(res.Err) {
			s.breaker.RecordSuccess()
			return errors.Join(ErrDeliveryFailed, ErrPermanentFailure, res.Err)
		}
		s.breaker.RecordFailure()
	}

	return errors.Join(ErrDeliveryFailed, fmt.Errorf("%d attempts: %w", attempts, lastErr))
}

func (s *Sender) attempt(ctx context.Context, target string, body []byte, out any) DeliveryResult {
	var res DeliveryResult
	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		res.Err = fmt.Errorf("%w: cannot build request", ErrInvalidURL)
		return res
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range s.headers {
		req.Header[k] = v
	}

	resp, err := s.client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		err = redact(err)
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			res.Err = errors.Join(ErrTemporaryFailure, ErrTimeout, err)
		} else {
			res.Err = errors.Join(ErrTemporaryFailure, err)
		}
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	res.StatusCode = resp.StatusCode
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		res.Err = &StatusError{StatusCode: resp.StatusCode, Body: raw}
		return res
	}
	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			res.Err = errors.Join(ErrInvalidResponse, err)
		}
	}
	return res
}

func retryable(err error) bool {
	if errors.Is(err, ErrTemporaryFailure) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.Retryable()
}

// redact drops the *url.Error wrapper, whose message repeats the request URL.
func redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

func validateURL(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("%w: malformed url", ErrInvalidURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidURL)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
