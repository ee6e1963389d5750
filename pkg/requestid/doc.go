// Package requestid propagates a correlation id through HTTP handlers and logs.
//
// Middleware reuses a valid X-Request-ID (or a configured provider delivery
// header such as X-Razorpay-Event-Id) and otherwise generates a UUID. The id
// is stored in the request context, echoed in the response header and picked
// up by LoggerExtractor for structured logs.
package requestid
