// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11. The
// default .env file is read once per process; additional files can be
// requested per call with WithEnvFiles. Parsing is driven by `env` and
// `envDefault` struct tags.
//
// The package keeps no parsed configuration of its own. Callers build one
// configuration struct at start-up and inject it into the components that
// need it, which keeps tests free of process-wide state.
//
// # Usage
//
//	var cfg membership.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// In tests, parse from an explicit map:
//
//	err := config.Load(&cfg, config.WithEnvironment(map[string]string{
//		"WEBHOOK_SECRET": "secret",
//	}))
package config
