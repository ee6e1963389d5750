package pg

import "time"

// Config holds PostgreSQL pool settings for the member store.
type Config struct {
	ConnectionString  string        `env:"PG_CONN_URL"`                           // ConnectionString selects the postgres backend when set.
	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`     // MaxOpenConns caps the pool size.
	MinConns          int32         `env:"PG_MIN_CONNS" envDefault:"1"`           // MinConns keeps warm connections.
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"` // HealthCheckPeriod is the pool's background check interval.
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"` // RetryInterval grows linearly with each attempt.

	MigrationsTable string `env:"PG_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}

// Enabled reports whether a connection string was configured.
func (c Config) Enabled() bool {
	return c.ConnectionString != ""
}
