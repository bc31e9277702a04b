package wavecx

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/wavecx/wavecx-go/pkg/config"
	"github.com/wavecx/wavecx-go/pkg/logger"
)

// Config holds environment-driven provider settings.
type Config struct {
	OrganizationCode string        `env:"WAVECX_ORGANIZATION_CODE,required"`
	APIBaseURL       string        `env:"WAVECX_API_BASE_URL" envDefault:"https://api.wavecx.com"`
	RequestTimeout   time.Duration `env:"WAVECX_REQUEST_TIMEOUT" envDefault:"30s"`
	LogLevel         string        `env:"WAVECX_LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"WAVECX_LOG_FORMAT" envDefault:"json"`
}

// LoadConfig reads Config from the environment.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Logger builds the logger described by LogLevel and LogFormat.
func (c Config) Logger() *slog.Logger {
	return logger.New(
		logger.WithLevel(logger.ParseLevel(c.LogLevel)),
		logger.WithFormat(logger.ParseFormat(c.LogFormat)),
		logger.WithAttr(logger.Component("wavecx"), logger.Organization(c.OrganizationCode)),
	)
}

// NewFromConfig creates a provider from cfg. Options are applied after the
// config-derived ones and take precedence.
func NewFromConfig(cfg Config, opts ...Option) (*Provider, error) {
	base := []Option{
		WithAPIBaseURL(cfg.APIBaseURL),
		WithRequestTimeout(cfg.RequestTimeout),
		WithLogger(cfg.Logger()),
	}
	p, err := New(cfg.OrganizationCode, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create provider from config: %w", err)
	}
	return p, nil
}
