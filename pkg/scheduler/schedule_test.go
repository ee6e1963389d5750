package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/premiumhub/pkg/scheduler"
)

func TestDailyAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{
			name: "later today",
			from: time.Date(2024, 1, 29, 6, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 29, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "exactly at the slot moves to tomorrow",
			from: time.Date(2024, 1, 29, 9, 30, 0, 0, time.UTC),
			want: time.Date(2024, 1, 30, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "month rollover",
			from: time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC),
			want: time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC),
		},
	}

	s := scheduler.DailyAt(9, 30)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, s.Next(tt.from))
		})
	}
	assert.Equal(t, "daily at 09:30", s.String())
}

func TestDailyAtClamps(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "daily at 23:00", scheduler.DailyAt(30, -5).String())
}

func TestEvery(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, from.Add(time.Hour), scheduler.Every(time.Hour).Next(from))
	assert.Equal(t, from.Add(time.Minute), scheduler.Every(0).Next(from))
}
