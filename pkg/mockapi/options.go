package mockapi

import (
	"log/slog"
	"time"

	"github.com/wavecx/wavecx-go/pkg/clientip"
)

// Option configures an API.
type Option func(*API)

// WithTokenTTL sets the lifetime of issued session tokens. Zero issues
// tokens without expiresIn, which never expire.
func WithTokenTTL(ttl time.Duration) Option {
	return func(a *API) {
		if ttl >= 0 {
			a.tokenTTL = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *API) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClientIPResolver sets how the recorded client address is resolved.
func WithClientIPResolver(r *clientip.Resolver) Option {
	return func(a *API) {
		if r != nil {
			a.clientIP = r
		}
	}
}
