package razorpay

import "time"

// Config holds API credentials for payment link creation.
type Config struct {
	KeyID     string        `env:"RAZORPAY_KEY_ID"`
	KeySecret string        `env:"RAZORPAY_KEY_SECRET"`
	BaseURL   string        `env:"RAZORPAY_BASE_URL" envDefault:"https://api.razorpay.com"`
	Timeout   time.Duration `env:"RAZORPAY_TIMEOUT" envDefault:"15s"`
}
