// Package config loads typed configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - LoadEnv reads one or more `.env` files into the process environment,
//     falling back to `./.env` and tolerating its absence.
//   - Load parses the environment into any struct annotated with `env` tags.
//   - MustLoad panics on failure for configuration the program cannot run without.
//
// Unlike a process-wide singleton, every call parses afresh, so two providers
// in the same process (or two tests) can be configured independently.
//
// # Usage
//
//	type Config struct {
//	    OrganizationCode string        `env:"WAVECX_ORGANIZATION_CODE,required"`
//	    APIBaseURL       string        `env:"WAVECX_API_BASE_URL" envDefault:"https://api.wavecx.com"`
//	    RequestTimeout   time.Duration `env:"WAVECX_REQUEST_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Sentinel errors can be compared with errors.Is:
//
//   - ErrParsingConfig – the environment could not be parsed into the struct.
//   - ErrLoadingEnvFile – an explicitly requested .env file could not be read.
//   - ErrNilPointer – a nil pointer was passed to Load.
package config
