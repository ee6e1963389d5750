package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// MemberID records the member identity under the key "member_id".
// An empty id produces an empty Attr.
func MemberID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("member_id", id)
}

// PaymentRef records the provider payment link id under the key "payment_ref".
func PaymentRef(ref string) slog.Attr {
	if ref == "" {
		return slog.Attr{}
	}
	return slog.String("payment_ref", ref)
}

// EventType records the provider event type under the key "event_type".
func EventType(eventType string) slog.Attr {
	return slog.String("event_type", eventType)
}

// Expiry records a membership expiry date under the key "expiry".
func Expiry(date string) slog.Attr {
	return slog.String("expiry", date)
}

// DaysLeft records days to expiry under the key "days_left".
func DaysLeft(n int) slog.Attr {
	return slog.Int("days_left", n)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Count records a counter under the given key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}
