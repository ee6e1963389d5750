package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Option configures a single Load call.
type Option func(*options)

type options struct {
	envFiles []string
	prefix   string
	environ  map[string]string
}

// WithEnvFiles loads the given dotenv files before parsing.
// Files are loaded in order; values already present in the process
// environment are never overwritten.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.envFiles = append(o.envFiles, files...)
	}
}

// WithPrefix scopes every env tag of the target struct under prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvironment parses from the given map instead of the process
// environment. Intended for tests.
func WithEnvironment(environ map[string]string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// Load populates v from environment variables using `env` struct tags.
//
// The default .env file in the working directory is loaded once per process
// when it exists. Unlike a global registry the parsed value is owned by the
// caller: build one configuration struct at startup and pass it down.
//
// Example:
//
//	type Config struct {
//		WebhookSecret string `env:"WEBHOOK_SECRET,required"`
//		GroupLink     string `env:"PREMIUM_GROUP_LINK,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load(v any, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	dotenvOnce.Do(func() {
		// A missing .env is fine; deployments inject real env vars.
		_ = godotenv.Load()
	})

	for _, f := range o.envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return errors.Join(ErrEnvFileNotFound, fmt.Errorf("%s: %w", f, err))
			}
			return errors.Join(ErrParsingConfig, err)
		}
	}

	envOpts := env.Options{Prefix: o.prefix}
	if o.environ != nil {
		envOpts.Environment = o.environ
	}

	if err := env.ParseWithOptions(v, envOpts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics on failure.
// Use it only during process start-up.
func MustLoad(v any, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
