package membership

// Config is the env-driven membership policy.
type Config struct {
	GroupLink          string `env:"PREMIUM_GROUP_LINK,required"`
	AmountMinor        int64  `env:"MEMBERSHIP_AMOUNT_MINOR" envDefault:"5000"` // 50 INR in paise
	Currency           string `env:"MEMBERSHIP_CURRENCY" envDefault:"INR"`
	Description        string `env:"MEMBERSHIP_DESCRIPTION" envDefault:"Skill & Opportunity Premium Hub membership"`
	PeriodDays         int    `env:"MEMBERSHIP_DAYS" envDefault:"30"`
	ReminderWindowDays int    `env:"REMINDER_WINDOW_DAYS" envDefault:"3"`
	AdminChatID        string `env:"ADMIN_CHAT_ID"`
	WebhookSecret      string `env:"WEBHOOK_SECRET,required"`
	SignatureHeader    string `env:"WEBHOOK_SIGNATURE_HEADER" envDefault:"X-Razorpay-Signature"`
	TriggerToken       string `env:"REMINDER_TRIGGER_TOKEN"`
	ScanConcurrency    int    `env:"SCAN_CONCURRENCY" envDefault:"4"`
}

// DefaultConfig returns the built-in policy with empty secrets.
func DefaultConfig() Config {
	return Config{
		AmountMinor:        5000,
		Currency:           "INR",
		Description:        "Skill & Opportunity Premium Hub membership",
		PeriodDays:         30,
		ReminderWindowDays: 3,
		SignatureHeader:    "X-Razorpay-Signature",
		ScanConcurrency:    4,
	}
}
