package redis

import "time"

// Config holds the Redis connection settings for the payment ledger.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                              // ConnectionURL like "redis://:password@localhost:6379/0"; empty disables redis.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // RetryAttempts is the number of ping attempts before giving up.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`   // RetryInterval is the pause between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"` // ConnectTimeout bounds the whole connect sequence.
}

// Enabled reports whether a connection URL was configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
