package wavecx

import (
	"log/slog"
	"time"

	"github.com/wavecx/wavecx-go/pkg/sessiontoken"
	"github.com/wavecx/wavecx-go/pkg/targetedcontent"
)

// Option configures a Provider.
type Option func(*Provider)

// WithGateway replaces the HTTP content-delivery client.
func WithGateway(gw targetedcontent.Gateway) Option {
	return func(p *Provider) {
		if gw != nil {
			p.gateway = gw
		}
	}
}

// WithSessionInitiator makes the provider obtain a session token before its
// first content fetch instead of sending user details to the gateway.
func WithSessionInitiator(si targetedcontent.SessionInitiator) Option {
	return func(p *Provider) {
		p.initiator = si
	}
}

// WithAPIBaseURL sets the base URL of the default gateway client.
// Ignored when WithGateway is used.
func WithAPIBaseURL(baseURL string) Option {
	return func(p *Provider) {
		if baseURL != "" {
			p.apiBaseURL = baseURL
		}
	}
}

// WithRequestTimeout bounds each call of the default gateway client.
// Ignored when WithGateway is used.
func WithRequestTimeout(d time.Duration) Option {
	return func(p *Provider) {
		if d > 0 {
			p.requestTimeout = d
		}
	}
}

// WithLogger sets the provider logger. Gateway failures are reported here.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithObserver attaches an Observer, e.g. metrics.NewObserver.
func WithObserver(o Observer) Option {
	return func(p *Provider) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithTokenCache supplies the session token cache, e.g. one with a fake clock.
func WithTokenCache(c *sessiontoken.Cache) Option {
	return func(p *Provider) {
		if c != nil {
			p.tokens = c
		}
	}
}

// WithChangeListener registers fn to receive a Snapshot after every state change.
func WithChangeListener(fn func(Snapshot)) Option {
	return func(p *Provider) {
		if fn != nil {
			p.listeners.add(fn)
		}
	}
}
