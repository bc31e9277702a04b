package requestid

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/oklog/ulid/v2"

	"github.com/wavecx/wavecx-go/pkg/logger"
)

// Header carries the request id over HTTP.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type contextKey struct{}

// New returns a fresh request id.
func New() string {
	return ulid.Make().String()
}

// Valid reports whether id is acceptable as a request id.
func Valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}

// WithContext stores id in ctx.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// FromContextOrNew returns the id in ctx if valid, otherwise a fresh one.
func FromContextOrNew(ctx context.Context) string {
	if id := FromContext(ctx); Valid(id) {
		return id
	}
	return New()
}

// LoggerExtractor exposes the request id to logger.WithContextExtractors.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}
