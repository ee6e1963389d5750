// Package webhook handles both directions of provider HTTP callbacks.
//
// Inbound: the payment provider signs the raw request body with HMAC-SHA256
// under a shared secret and sends the hex digest in a header
// (X-Razorpay-Signature by default). Verify recomputes the digest over the
// exact bytes received and compares in constant time, so it must run before
// the body is decoded or re-encoded in any way.
//
//	body, _ := io.ReadAll(r.Body)
//	if err := auth.Authenticate(r, body); err != nil {
//	    w.WriteHeader(webhook.StatusCode(err)) // 400 missing, 401 mismatch
//	    return
//	}
//
// Sign produces the same digest and is used by tests and local tooling to
// craft valid deliveries.
//
// Outbound: Sender POSTs JSON with per-attempt timeouts, retries on
// transport errors and 408/425/429/5xx, and an optional CircuitBreaker that
// stops hammering an endpoint that keeps failing. The Telegram notifier is
// built on it:
//
//	s := webhook.NewSender(
//	    webhook.WithExponentialRetry(2, 500*time.Millisecond, 5*time.Second),
//	    webhook.WithCircuitBreaker(webhook.NewCircuitBreaker(5, 30*time.Second)),
//	    webhook.WithAttemptGate(limiter.Wait),
//	)
//	var out apiResponse
//	err := s.Send(ctx, endpoint, req, &out)
package webhook
