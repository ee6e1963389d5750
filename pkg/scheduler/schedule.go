package scheduler

import (
	"fmt"
	"time"
)

// Schedule determines when a job should run next.
type Schedule interface {
	Next(from time.Time) time.Time
	String() string
}

type intervalSchedule struct {
	every time.Duration
}

func (s intervalSchedule) Next(from time.Time) time.Time {
	return from.Add(s.every)
}

func (s intervalSchedule) String() string {
	return fmt.Sprintf("every %v", s.every)
}

// dailySchedule fires once per day at hour:minute in the location of from.
type dailySchedule struct {
	hour   int
	minute int
}

func (s dailySchedule) Next(from time.Time) time.Time {
	next := time.Date(from.Year(), from.Month(), from.Day(), s.hour, s.minute, 0, 0, from.Location())
	if !next.After(from) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s dailySchedule) String() string {
	return fmt.Sprintf("daily at %02d:%02d", s.hour, s.minute)
}

// Every returns a fixed-interval schedule. Non-positive intervals fall back to one minute.
func Every(d time.Duration) Schedule {
	if d <= 0 {
		d = time.Minute
	}
	return intervalSchedule{every: d}
}

// DailyAt returns a schedule firing once a day at hour:minute.
// Out-of-range values are clamped.
func DailyAt(hour, minute int) Schedule {
	return dailySchedule{hour: clamp(hour, 0, 23), minute: clamp(minute, 0, 59)}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
