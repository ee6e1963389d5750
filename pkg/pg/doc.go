// Package pg opens a pgx/v5 connection pool with retries, exposes a ping
// based readiness check and applies embedded goose migrations.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, migrations, "migrations", log); err != nil {
//		return err
//	}
//
// Configuration comes from PG_* environment variables; see Config.
package pg
