package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavecx/wavecx-go/pkg/async"
)

func TestGo(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		t.Parallel()
		f := async.Go(context.Background(), func(ctx context.Context) (string, error) {
			return "ok", nil
		})
		res, err := f.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ok", res)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		f := async.Go(context.Background(), func(ctx context.Context) (int, error) {
			return 0, boom
		})
		_, err := f.Await(context.Background())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("recovers panics", func(t *testing.T) {
		t.Parallel()
		f := async.Go(context.Background(), func(ctx context.Context) (int, error) {
			panic("kaboom")
		})
		_, err := f.Await(context.Background())
		assert.ErrorIs(t, err, async.ErrPanicked)
		assert.Contains(t, err.Error(), "kaboom")
	})
}

func TestFuture_AwaitCancelled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := async.Go(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 7, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	res, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, res)
}
