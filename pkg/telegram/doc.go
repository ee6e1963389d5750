// Package telegram sends bot messages via the HTTP Bot API.
//
// Delivery goes through webhook.Sender: transient API errors (429, 5xx,
// network) are retried with jittered backoff, and a circuit breaker stops a
// reminder scan from hammering the API while it is down. Each attempt is
// paced by a token bucket (golang.org/x/time/rate) so a scan fanning out to
// many members stays inside the Bot API limits.
package telegram
