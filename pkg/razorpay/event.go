package razorpay

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// EventPaymentLinkPaid is the only event type that grants membership.
const EventPaymentLinkPaid = "payment_link.paid"

// NoteMemberID is the notes key carrying the member identity.
const NoteMemberID = "telegram_id"

// Event is a decoded webhook envelope.
type Event struct {
	Event     string `json:"event"`
	AccountID string `json:"account_id"`
	CreatedAt int64  `json:"created_at"`
	Payload   struct {
		PaymentLink *struct {
			Entity PaymentLinkEntity `json:"entity"`
		} `json:"payment_link"`
	} `json:"payload"`
}

// PaymentLinkEntity is the payment link snapshot inside an event.
type PaymentLinkEntity struct {
	ID          string `json:"id"`
	ReferenceID string `json:"reference_id"`
	Status      string `json:"status"`
	Notes       Notes  `json:"notes"`
}

// Notes is the provider's key/value annotation map. Decoding tolerates
// numeric values and the empty array sent when a link has no notes.
type Notes map[string]string

func (n *Notes) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "[]" {
		*n = nil
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Notes, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = fmt.Sprintf("%.0f", val)
		case nil:
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	*n = out
	return nil
}

// ParseEvent decodes a webhook body. Errors wrap ErrMalformedEvent.
func ParseEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, errors.Join(ErrMalformedEvent, err)
	}
	if ev.Event == "" {
		return nil, fmt.Errorf("%w: missing event type", ErrMalformedEvent)
	}
	return &ev, nil
}

// PaymentLink returns the embedded entity, or nil when absent.
func (e *Event) PaymentLink() *PaymentLinkEntity {
	if e.Payload.PaymentLink == nil {
		return nil
	}
	return &e.Payload.PaymentLink.Entity
}

// MemberID returns notes.telegram_id of the payment link, or "".
func (e *Event) MemberID() string {
	pl := e.PaymentLink()
	if pl == nil {
		return ""
	}
	return strings.TrimSpace(pl.Notes[NoteMemberID])
}

// PaymentRef returns the payment link id, or "".
func (e *Event) PaymentRef() string {
	if pl := e.PaymentLink(); pl != nil {
		return pl.ID
	}
	return ""
}
