package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/premiumhub/pkg/config"
)

func TestAppConfigFromEnvironment(t *testing.T) {
	t.Parallel()

	var cfg appConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvironment(map[string]string{
		"PREMIUM_GROUP_LINK": "https://t.me/+group",
		"WEBHOOK_SECRET":     "whsec",
		"REDIS_URL":          "redis://localhost:6379/0",
	})))

	assert.Equal(t, int64(5000), cfg.Membership.AmountMinor)
	assert.Equal(t, "INR", cfg.Membership.Currency)
	assert.Equal(t, 30, cfg.Membership.PeriodDays)
	assert.Equal(t, 3, cfg.Membership.ReminderWindowDays)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 15*time.Second, cfg.Razorpay.Timeout)
	assert.False(t, cfg.Mongo.Enabled())
	assert.False(t, cfg.Postgres.Enabled())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "daily at 09:00", cfg.Schedule.schedule().String())
}

func TestAppConfigRequiresSecrets(t *testing.T) {
	t.Parallel()

	var cfg appConfig
	assert.Error(t, config.Load(&cfg, config.WithEnvironment(map[string]string{})))
}

func TestScheduleIntervalOverride(t *testing.T) {
	t.Parallel()

	cfg := scheduleConfig{Hour: 9, Interval: 6 * time.Hour}
	assert.Equal(t, "every 6h0m0s", cfg.schedule().String())
}
