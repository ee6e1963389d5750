package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/premiumhub/pkg/cache"
)

// LedgerConfig bounds how long applied payment references are remembered.
type LedgerConfig struct {
	Capacity int           `env:"LEDGER_CAPACITY" envDefault:"10000"` // Capacity caps the in-memory ledger.
	TTL      time.Duration `env:"LEDGER_TTL" envDefault:"720h"`       // TTL must outlive the provider's redelivery window.
	Prefix   string        `env:"LEDGER_PREFIX" envDefault:"premiumhub:payment:"`
}

// MemoryLedger remembers applied payment references in a bounded LRU.
// Entries do not survive a restart.
type MemoryLedger struct {
	seen *cache.LRU[string, struct{}]
}

// NewMemoryLedger keeps up to capacity keys, each for ttl (0 keeps them until evicted).
func NewMemoryLedger(capacity int, ttl time.Duration) *MemoryLedger {
	return &MemoryLedger{seen: cache.NewLRU[string, struct{}](capacity, cache.WithTTL(ttl))}
}

func (l *MemoryLedger) Seen(_ context.Context, key string) (bool, error) {
	return l.seen.Contains(key), nil
}

func (l *MemoryLedger) Mark(_ context.Context, key string) error {
	l.seen.Put(key, struct{}{})
	return nil
}

// RedisLedger remembers applied payment references in Redis so the guard
// holds across restarts.
type RedisLedger struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisLedger(client redis.Cmdable, cfg LedgerConfig) *RedisLedger {
	return &RedisLedger{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}
}

func (l *RedisLedger) Seen(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Exists(ctx, l.prefix+key).Result()
	if err != nil {
		return false, errors.Join(ErrQuery, err)
	}
	return n > 0, nil
}

func (l *RedisLedger) Mark(ctx context.Context, key string) error {
	if err := l.client.SetNX(ctx, l.prefix+key, "1", l.ttl).Err(); err != nil {
		return errors.Join(ErrQuery, err)
	}
	return nil
}
