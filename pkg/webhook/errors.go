package webhook

import "errors"

// Authentication outcomes. The HTTP layer turns ErrMissingSignature into a
// 400 and ErrSignatureMismatch into a 401.
var (
	ErrInvalidConfiguration = errors.New("invalid webhook configuration")
	ErrMissingSignature     = errors.New("webhook signature is missing")
	ErrSignatureMismatch    = errors.New("webhook signature mismatch")
)

// Delivery outcomes for Sender. Every failed Send wraps ErrDeliveryFailed;
// ErrPermanentFailure marks failures that were not retried.
var (
	ErrDeliveryFailed   = errors.New("webhook delivery failed")
	ErrPermanentFailure = errors.New("permanent delivery failure")
	ErrTemporaryFailure = errors.New("temporary delivery failure")
	ErrTimeout          = errors.New("delivery attempt timed out")
	ErrCircuitOpen      = errors.New("delivery circuit breaker is open")
	ErrInvalidURL       = errors.New("invalid delivery url")
	ErrInvalidPayload   = errors.New("invalid delivery payload")
	ErrInvalidResponse  = errors.New("invalid delivery response")
)

// IsMissingSignature reports whether err indicates an absent signature header.
func IsMissingSignature(err error) bool {
	return errors.Is(err, ErrMissingSignature)
}

// IsSignatureMismatch reports whether err indicates a forged or corrupted payload.
func IsSignatureMismatch(err error) bool {
	return errors.Is(err, ErrSignatureMismatch)
}

// IsCircuitOpen reports whether a send was refused by the circuit breaker.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, ErrCircuitOpen)
}
