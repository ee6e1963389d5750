package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/premiumhub/pkg/config"
)

type sampleConfig struct {
	Secret   string        `env:"SECRET,required"`
	Days     int           `env:"DAYS" envDefault:"30"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"15s"`
	Currency string        `env:"CURRENCY" envDefault:"INR"`
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()

		var cfg sampleConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{"SECRET": "s3cr3t"}))
		require.NoError(t, err)

		assert.Equal(t, "s3cr3t", cfg.Secret)
		assert.Equal(t, 30, cfg.Days)
		assert.Equal(t, 15*time.Second, cfg.Timeout)
		assert.Equal(t, "INR", cfg.Currency)
	})

	t.Run("explicit values override defaults", func(t *testing.T) {
		t.Parallel()

		var cfg sampleConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{
			"SECRET":  "x",
			"DAYS":    "45",
			"TIMEOUT": "2s",
		}))
		require.NoError(t, err)

		assert.Equal(t, 45, cfg.Days)
		assert.Equal(t, 2*time.Second, cfg.Timeout)
	})

	t.Run("missing required value", func(t *testing.T) {
		t.Parallel()

		var cfg sampleConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{}))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()

		var cfg sampleConfig
		err := config.Load(&cfg,
			config.WithPrefix("APP_"),
			config.WithEnvironment(map[string]string{"APP_SECRET": "prefixed"}),
		)
		require.NoError(t, err)
		assert.Equal(t, "prefixed", cfg.Secret)
	})

	t.Run("nil target", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, config.Load(nil), config.ErrNilPointer)
	})
}

func TestLoad_EnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CONFIG_TEST_FILE_SECRET=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CONFIG_TEST_FILE_SECRET") })

	type fileConfig struct {
		Secret string `env:"CONFIG_TEST_FILE_SECRET,required"`
	}

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path)))
	assert.Equal(t, "from-file", cfg.Secret)

	err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(dir, "missing.env")))
	assert.ErrorIs(t, err, config.ErrEnvFileNotFound)
}

func TestMustLoad(t *testing.T) {
	t.Parallel()

	var cfg sampleConfig
	assert.Panics(t, func() {
		config.MustLoad(&cfg, config.WithEnvironment(map[string]string{}))
	})
}
