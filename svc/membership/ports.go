package membership

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the durable key-value table of membership records keyed by member id.
type Store interface {
	// Get returns ErrRecordNotFound when the member has never paid.
	Get(ctx context.Context, memberID string) (*Record, error)
	// Upsert writes the record, replacing any previous one for the same member.
	Upsert(ctx context.Context, rec *Record) error
	// All streams every record to fn and stops at the first error fn returns.
	// Records whose expiry cannot be parsed are yielded with a zero Expiry.
	All(ctx context.Context, fn func(Record) error) error
}

// Notifier delivers a text message to a chat.
type Notifier interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// PaymentLinkRequest describes a payment link for one member.
type PaymentLinkRequest struct {
	MemberID    string
	AmountMinor int64
	Currency    string
	Description string
	ReferenceID string
	Notes       map[string]string
}

// PaymentLink is a created hosted payment link.
// ShortURL may be empty when the provider omits it.
type PaymentLink struct {
	ID       string
	ShortURL string
	Raw      json.RawMessage
}

// PaymentGateway creates payment links.
type PaymentGateway interface {
	CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLink, error)
}

// Ledger remembers which payment events were already applied.
type Ledger interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// Clock returns the current time.
type Clock func() time.Time

// PaymentEvent is an authenticated, decoded payment notification.
type PaymentEvent struct {
	EventID    string // provider delivery id, if any
	MemberID   string
	PaymentRef string // payment link id
	ReceivedAt time.Time // payment time; zero means the engine clock
}

// idempotencyKey prefers the payment reference; redeliveries of the same
// payment carry the same link id even when the delivery id changes.
func (e PaymentEvent) idempotencyKey() string {
	if e.PaymentRef != "" {
		return "payment:" + e.PaymentRef
	}
	if e.EventID != "" {
		return "event:" + e.EventID
	}
	return ""
}
