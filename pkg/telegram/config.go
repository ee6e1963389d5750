package telegram

import "time"

// Config holds Bot API settings.
type Config struct {
	BotToken   string        `env:"BOT_TOKEN"`
	BaseURL    string        `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
	Timeout    time.Duration `env:"TELEGRAM_TIMEOUT" envDefault:"15s"`
	RatePerSec float64       `env:"TELEGRAM_RATE_PER_SEC" envDefault:"25"` // RatePerSec stays under the Bot API global limit of 30 msg/s.
	Burst      int           `env:"TELEGRAM_RATE_BURST" envDefault:"5"`

	MaxRetries       int           `env:"TELEGRAM_MAX_RETRIES" envDefault:"2"`
	RetryBase        time.Duration `env:"TELEGRAM_RETRY_BASE" envDefault:"500ms"`
	RetryMax         time.Duration `env:"TELEGRAM_RETRY_MAX" envDefault:"5s"`
	BreakerThreshold int           `env:"TELEGRAM_BREAKER_THRESHOLD" envDefault:"5"` // 0 disables the breaker.
	BreakerCooldown  time.Duration `env:"TELEGRAM_BREAKER_COOLDOWN" envDefault:"30s"`
}
