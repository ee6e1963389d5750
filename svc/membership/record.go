package membership

import (
	"fmt"
	"time"
)

// DateLayout is the persisted form of an expiry date.
const DateLayout = "2006-01-02"

// Date is a UTC calendar date without a time component.
// The zero value means "no date" and marks a record whose expiry could not be read.
type Date struct {
	t time.Time
}

// NewDate returns the date y-m-d.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the UTC calendar date of t.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// DaysSince returns the number of calendar days from o to d.
func (d Date) DaysSince(o Date) int {
	return int(d.t.Sub(o.t).Hours() / 24)
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time { return d.t }

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Record is the persisted membership state of one member.
type Record struct {
	MemberID       string    `json:"member_id"`
	JoinedAt       time.Time `json:"joined_at"` // time of the most recent successful payment
	Expiry         Date      `json:"expiry"`
	LastPaymentRef string    `json:"last_payment_ref,omitempty"`
}

// Valid reports whether the record carries an identity and a readable expiry.
func (r Record) Valid() bool {
	return r.MemberID != "" && !r.Expiry.IsZero()
}

// Lapsed reports whether the expiry date lies before the calendar date of now.
// A member stays active through the whole expiry day.
func (r Record) Lapsed(now time.Time) bool {
	return r.Expiry.Before(DateOf(now))
}

// DaysLeft returns whole calendar days from today to expiry.
// Zero means the membership expires today; negative means lapsed.
func (r Record) DaysLeft(now time.Time) int {
	return r.Expiry.DaysSince(DateOf(now))
}

func timeNowUTC() time.Time { return time.Now().UTC() }
