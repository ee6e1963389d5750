// Package redis connects a go-redis client with bounded retries and exposes
// a ping based readiness check.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Configuration comes from REDIS_* environment variables. Errors wrap the
// package sentinels via errors.Join so callers can match them with errors.Is.
package redis
