package razorpay

import "errors"

var (
	ErrMissingCredentials = errors.New("razorpay: key id and secret are required")
	ErrRequestFailed      = errors.New("razorpay: request failed")
	ErrUnexpectedStatus   = errors.New("razorpay: unexpected response status")
	ErrDecodeResponse     = errors.New("razorpay: failed to decode response")
	ErrMalformedEvent     = errors.New("razorpay: malformed webhook event")
)
