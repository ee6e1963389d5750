package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/premiumhub/pkg/httpserver"
)

// ReadinessCheck pings the server backing the payment ledger.
func ReadinessCheck(client redis.UniversalClient) httpserver.Check {
	return httpserver.Check{
		Name: "redis",
		Fn: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Join(ErrHealthcheckFailed, err)
			}
			return nil
		},
	}
}
