package mockapi

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/wavecx/wavecx-go/pkg/httpserver"
	"github.com/wavecx/wavecx-go/pkg/logger"
)

// Server runs an API over HTTP.
type Server struct {
	api  *API
	http *httpserver.Server
}

// NewServer loads the configured catalog and prepares a server. An empty
// catalog path serves no organizations.
func NewServer(cfg Config, log *slog.Logger, opts ...httpserver.Option) (*Server, error) {
	if log == nil {
		log = logger.Discard()
	}

	catalog := &Catalog{}
	if cfg.Catalog != "" {
		c, err := LoadCatalog(cfg.Catalog)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", cfg.Catalog, err)
		}
		catalog = c
	}

	api := New(catalog, WithTokenTTL(cfg.TokenTTL), WithLogger(log))
	srv := httpserver.NewFromConfig(cfg.HTTP, append([]httpserver.Option{httpserver.WithLogger(log)}, opts...)...)
	return &Server{api: api, http: srv}, nil
}

// API exposes the handler state, e.g. recorded events.
func (s *Server) API() *API {
	return s.api
}

// Addr returns the bound address once listening.
func (s *Server) Addr() net.Addr {
	return s.http.Addr()
}

// Run serves until ctx is done or the process is signalled.
func (s *Server) Run(ctx context.Context) error {
	return s.http.Run(ctx, s.api.Routes())
}
