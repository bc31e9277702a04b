package mockapi

import (
	"time"

	"github.com/wavecx/wavecx-go/pkg/httpserver"
)

// Config is the environment configuration of the mock server.
type Config struct {
	HTTP     httpserver.Config `envPrefix:"WAVECX_MOCK_"`
	Catalog  string            `env:"WAVECX_MOCK_CATALOG"`
	TokenTTL time.Duration     `env:"WAVECX_MOCK_TOKEN_TTL" envDefault:"15m"`
}
