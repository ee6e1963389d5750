package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
)

// DefaultSignatureHeader is the header Razorpay uses to carry the body signature.
const DefaultSignatureHeader = "X-Razorpay-Signature"

// Sign returns the hex-encoded HMAC-SHA256 of payload under secret.
func Sign(secret string, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify checks that signature is the hex HMAC-SHA256 of the exact raw
// payload bytes. The payload must not be re-serialized before calling Verify.
//
// Returns ErrMissingSignature for an empty signature and
// ErrSignatureMismatch when the values differ. The comparison is constant time.
func Verify(secret string, payload []byte, signature string) error {
	if secret == "" {
		return fmt.Errorf("%w: secret is required", ErrInvalidConfiguration)
	}
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return ErrMissingSignature
	}

	expected := Sign(secret, payload)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return ErrSignatureMismatch
	}
	return nil
}

// Authenticator verifies inbound webhook requests against a shared secret.
type Authenticator struct {
	secret string
	header string
}

// NewAuthenticator returns an Authenticator reading the signature from header.
// An empty header falls back to DefaultSignatureHeader.
func NewAuthenticator(secret, header string) *Authenticator {
	if header == "" {
		header = DefaultSignatureHeader
	}
	return &Authenticator{secret: secret, header: header}
}

// Header returns the request header carrying the signature.
func (a *Authenticator) Header() string {
	return a.header
}

// Authenticate verifies body using the signature header of r.
func (a *Authenticator) Authenticate(r *http.Request, body []byte) error {
	return Verify(a.secret, body, r.Header.Get(a.header))
}

// StatusCode maps an authentication error to the HTTP status the provider
// should receive. A nil error maps to 200.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsMissingSignature(err):
		return http.StatusBadRequest
	case IsSignatureMismatch(err):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
