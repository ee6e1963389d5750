package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/premiumhub/svc/membership"
	"github.com/dmitrymomot/premiumhub/svc/membership/store"
)

func ledgerContract(t *testing.T, l membership.Ledger) {
	t.Helper()
	ctx := context.Background()

	seen, err := l.Seen(ctx, "payment:plink_1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, l.Mark(ctx, "payment:plink_1"))
	require.NoError(t, l.Mark(ctx, "payment:plink_1"))

	seen, err = l.Seen(ctx, "payment:plink_1")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = l.Seen(ctx, "payment:plink_2")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestMemoryLedger(t *testing.T) {
	t.Parallel()
	ledgerContract(t, store.NewMemoryLedger(16, time.Hour))
}

func TestMemoryLedgerEvictsOldest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := store.NewMemoryLedger(2, 0)
	require.NoError(t, l.Mark(ctx, "a"))
	require.NoError(t, l.Mark(ctx, "b"))
	require.NoError(t, l.Mark(ctx, "c"))

	seen, _ := l.Seen(ctx, "a")
	assert.False(t, seen)
	seen, _ = l.Seen(ctx, "c")
	assert.True(t, seen)
}

func newRedisLedger(t *testing.T, ttl time.Duration) (*store.RedisLedger, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return store.NewRedisLedger(client, store.LedgerConfig{Prefix: "test:", TTL: ttl}), mr
}

func TestRedisLedger(t *testing.T) {
	t.Parallel()
	l, mr := newRedisLedger(t, time.Hour)
	ledgerContract(t, l)
	assert.True(t, mr.Exists("test:payment:plink_1"))
}

func TestRedisLedgerExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l, mr := newRedisLedger(t, time.Minute)
	require.NoError(t, l.Mark(ctx, "k"))

	mr.FastForward(2 * time.Minute)
	seen, err := l.Seen(ctx, "k")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRedisLedgerUnavailable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l, mr := newRedisLedger(t, time.Minute)
	mr.Close()

	_, err := l.Seen(ctx, "k")
	assert.ErrorIs(t, err, store.ErrQuery)
	assert.ErrorIs(t, l.Mark(ctx, "k"), store.ErrQuery)
}
