package store_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/premiumhub/pkg/mongo"
	"github.com/dmitrymomot/premiumhub/pkg/pg"
	"github.com/dmitrymomot/premiumhub/svc/membership"
	"github.com/dmitrymomot/premiumhub/svc/membership/store"
)

// These run only against real servers: set TEST_MONGODB_URL or TEST_PG_CONN_URL.

func TestMongoStore(t *testing.T) {
	url := os.Getenv("TEST_MONGODB_URL")
	if url == "" {
		t.Skip("TEST_MONGODB_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	storeContract(t, func(t *testing.T) membership.Store {
		db, err := mongo.Database(ctx, mongo.Config{
			ConnectionURL:  url,
			Database:       fmt.Sprintf("premiumhub_test_%d", time.Now().UnixNano()),
			ConnectTimeout: 5 * time.Second,
			RetryAttempts:  1,
		})
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = db.Drop(context.Background())
			_ = db.Client().Disconnect(context.Background())
		})
		return store.NewMongo(db)
	})
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_PG_CONN_URL")
	if url == "" {
		t.Skip("TEST_PG_CONN_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := pg.Config{ConnectionString: url, MaxOpenConns: 4, RetryAttempts: 1, MigrationsTable: "schema_migrations"}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, store.Migrate(ctx, pool, cfg, nil))

	storeContract(t, func(t *testing.T) membership.Store {
		_, err := pool.Exec(ctx, "TRUNCATE members")
		require.NoError(t, err)
		return store.NewPostgres(pool)
	})
}
