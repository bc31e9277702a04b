package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavecx/wavecx-go/pkg/config"
)

type sampleConfig struct {
	Organization string        `env:"ORGANIZATION_CODE,required"`
	BaseURL      string        `env:"API_BASE_URL" envDefault:"https://api.wavecx.com"`
	Timeout      time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg sampleConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{
			"ORGANIZATION_CODE": "acme",
		}))
		require.NoError(t, err)
		assert.Equal(t, "acme", cfg.Organization)
		assert.Equal(t, "https://api.wavecx.com", cfg.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
	})

	t.Run("overrides", func(t *testing.T) {
		var cfg sampleConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{
			"ORGANIZATION_CODE": "acme",
			"API_BASE_URL":      "http://localhost:8080",
			"REQUEST_TIMEOUT":   "5s",
		}))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("prefix", func(t *testing.T) {
		var cfg sampleConfig
		err := config.Load(&cfg,
			config.WithPrefix("WAVECX_"),
			config.WithEnvironment(map[string]string{"WAVECX_ORGANIZATION_CODE": "acme"}),
		)
		require.NoError(t, err)
		assert.Equal(t, "acme", cfg.Organization)
	})

	t.Run("missing required", func(t *testing.T) {
		var cfg sampleConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{}))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *sampleConfig
		err := config.Load(cfg)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("process environment", func(t *testing.T) {
		t.Setenv("ORGANIZATION_CODE", "from-env")
		var cfg sampleConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "from-env", cfg.Organization)
	})
}

func TestMustLoad(t *testing.T) {
	assert.Panics(t, func() {
		var cfg sampleConfig
		config.MustLoad(&cfg, config.WithEnvironment(map[string]string{}))
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ".env")
		require.NoError(t, os.WriteFile(path, []byte("WAVECX_TEST_LOADENV=from-file\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("WAVECX_TEST_LOADENV") })

		require.NoError(t, config.LoadEnv(path))
		assert.Equal(t, "from-file", os.Getenv("WAVECX_TEST_LOADENV"))
	})

	t.Run("missing explicit file", func(t *testing.T) {
		err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})

	t.Run("missing default file is ignored", func(t *testing.T) {
		assert.NoError(t, config.LoadEnv())
	})
}
