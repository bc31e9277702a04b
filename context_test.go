package wavecx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavecx/wavecx-go"
)

func TestProviderContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		p := wavecx.MustNew("acme")
		ctx := wavecx.WithProvider(context.Background(), p)

		got, ok := wavecx.FromContext(ctx)
		require.True(t, ok)
		assert.Same(t, p, got)
		assert.Same(t, p, wavecx.MustFromContext(ctx))
	})

	t.Run("missing provider", func(t *testing.T) {
		t.Parallel()

		_, ok := wavecx.FromContext(context.Background())
		assert.False(t, ok)
		assert.PanicsWithValue(t, wavecx.ErrNoProvider, func() {
			wavecx.MustFromContext(context.Background())
		})
	})

	t.Run("nil provider", func(t *testing.T) {
		t.Parallel()

		ctx := wavecx.WithProvider(context.Background(), nil)
		_, ok := wavecx.FromContext(ctx)
		assert.False(t, ok)
	})
}
