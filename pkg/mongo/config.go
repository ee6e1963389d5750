package mongo

import "time"

// Config holds MongoDB connection settings for the member store.
type Config struct {
	ConnectionURL  string        `env:"MONGODB_URL"`                              // ConnectionURL selects the mongo backend when set.
	Database       string        `env:"MONGODB_DATABASE" envDefault:"premiumhub"` // Database holds the members collection.
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize    uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"20"`
	MinPoolSize    uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`
	RetryAttempts  int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

// Enabled reports whether a connection URL was configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
