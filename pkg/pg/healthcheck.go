package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/premiumhub/pkg/httpserver"
)

// ReadinessCheck acquires a pooled connection and pings through it.
func ReadinessCheck(pool *pgxpool.Pool) httpserver.Check {
	return httpserver.Check{
		Name: "postgres",
		Fn: func(ctx context.Context) error {
			if err := pool.Ping(ctx); err != nil {
				return errors.Join(ErrHealthcheckFailed, err)
			}
			return nil
		},
	}
}
