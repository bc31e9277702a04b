package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavecx/wavecx-go/pkg/logger"
	"github.com/wavecx/wavecx-go/pkg/requestid"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a, b := requestid.New(), requestid.New()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.True(t, requestid.Valid(a))
}

func TestValid(t *testing.T) {
	t.Parallel()

	assert.True(t, requestid.Valid("abc-123_DEF"))
	for _, id := range []string{"", "has space", "a/b", "a@b", strings.Repeat("a", 129)} {
		assert.False(t, requestid.Valid(id), id)
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))

	ctx := requestid.WithContext(context.Background(), "req-1")
	assert.Equal(t, "req-1", requestid.FromContext(ctx))
	assert.Equal(t, "req-1", requestid.FromContextOrNew(ctx))

	fresh := requestid.FromContextOrNew(requestid.WithContext(context.Background(), "bad id"))
	assert.NotEqual(t, "bad id", fresh)
	assert.True(t, requestid.Valid(fresh))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "reuses valid id", header: "01J9Z3T6K2R5X8Y1W4V7Q0N3M6", keep: true},
		{name: "generates when missing"},
		{name: "replaces malformed id", header: "drop table;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = requestid.FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set(requestid.Header, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(requestid.Header))
			if tt.keep {
				assert.Equal(t, tt.header, seen)
			} else {
				assert.NotEqual(t, tt.header, seen)
			}
		})
	}
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	log.InfoContext(requestid.WithContext(context.Background(), "req-42"), "handled")
	log.InfoContext(context.Background(), "no id")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"request_id":"req-42"`)
	assert.NotContains(t, lines[1], "request_id")
}
