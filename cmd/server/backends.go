package main

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/premiumhub/pkg/blob"
	"github.com/dmitrymomot/premiumhub/pkg/httpserver"
	"github.com/dmitrymomot/premiumhub/pkg/mongo"
	"github.com/dmitrymomot/premiumhub/pkg/pg"
	"github.com/dmitrymomot/premiumhub/pkg/redis"
	"github.com/dmitrymomot/premiumhub/svc/membership"
	"github.com/dmitrymomot/premiumhub/svc/membership/store"
)

type storeBackend struct {
	name   string
	store  membership.Store
	checks []httpserver.Check
	close  func()
}

// openStore picks the member store: mongo, then postgres, then the JSON
// file on S3 or local disk.
func openStore(ctx context.Context, cfg appConfig, log *slog.Logger) (*storeBackend, error) {
	switch {
	case cfg.Mongo.Enabled():
		db, err := mongo.Database(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return &storeBackend{
			name:   "mongo",
			store:  store.NewMongo(db),
			checks: []httpserver.Check{mongo.ReadinessCheck(db.Client())},
			close:  func() { _ = db.Client().Disconnect(context.WithoutCancel(ctx)) },
		}, nil

	case cfg.Postgres.Enabled():
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx, pool, cfg.Postgres, log); err != nil {
			pool.Close()
			return nil, err
		}
		return &storeBackend{
			name:   "postgres",
			store:  store.NewPostgres(pool),
			checks: []httpserver.Check{pg.ReadinessCheck(pool)},
			close:  pool.Close,
		}, nil

	case cfg.S3.Enabled():
		s3, err := blob.NewS3(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return &storeBackend{name: "s3", store: store.NewFile(s3, store.DefaultFileKey), close: func() {}}, nil

	default:
		local, err := blob.NewLocal(cfg.Local)
		if err != nil {
			return nil, err
		}
		return &storeBackend{name: "file", store: store.NewFile(local, store.DefaultFileKey), close: func() {}}, nil
	}
}

// openLedger uses redis when configured, otherwise an in-process LRU.
func openLedger(ctx context.Context, cfg appConfig) (membership.Ledger, []httpserver.Check, func(), error) {
	if !cfg.Redis.Enabled() {
		return store.NewMemoryLedger(max(cfg.Ledger.Capacity, 1), cfg.Ledger.TTL), nil, func() {}, nil
	}
	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, nil, err
	}
	checks := []httpserver.Check{redis.ReadinessCheck(client)}
	return store.NewRedisLedger(client, cfg.Ledger), checks, func() { _ = client.Close() }, nil
}
