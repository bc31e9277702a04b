package sessiontoken_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wavecx/wavecx-go/pkg/sessiontoken"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCache(t *testing.T) {
	t.Parallel()

	t.Run("empty cache reads absent", func(t *testing.T) {
		c := sessiontoken.New()
		tok, ok := c.Read()
		assert.False(t, ok)
		assert.Empty(t, tok)
	})

	t.Run("token readable before expiry", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		c := sessiontoken.New(sessiontoken.WithClock(clock.Now))

		c.Store("tok-1", time.Minute)
		clock.Advance(59 * time.Second)

		tok, ok := c.Read()
		assert.True(t, ok)
		assert.Equal(t, "tok-1", tok)
		assert.Equal(t, time.Unix(1_700_000_060, 0), c.ExpiresAt())
	})

	t.Run("token absent at and after expiry", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		c := sessiontoken.New(sessiontoken.WithClock(clock.Now))

		c.Store("tok-1", time.Minute)
		clock.Advance(time.Minute)
		_, ok := c.Read()
		assert.False(t, ok, "expiry instant itself is no longer valid")

		clock.Advance(time.Hour)
		_, ok = c.Read()
		assert.False(t, ok)
	})

	t.Run("non-positive ttl is already expired", func(t *testing.T) {
		for _, ttl := range []time.Duration{0, -time.Minute} {
			clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
			c := sessiontoken.New(sessiontoken.WithClock(clock.Now))

			c.Store("tok-1", ttl)

			tok, ok := c.Read()
			assert.False(t, ok, "ttl %s", ttl)
			assert.Empty(t, tok)
		}
	})

	t.Run("store without expiry", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		c := sessiontoken.New(sessiontoken.WithClock(clock.Now))

		c.StoreWithoutExpiry("tok-1")
		clock.Advance(24 * time.Hour)

		tok, ok := c.Read()
		assert.True(t, ok)
		assert.Equal(t, "tok-1", tok)
		assert.True(t, c.ExpiresAt().IsZero())
	})

	t.Run("store after store without expiry sets expiry", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		c := sessiontoken.New(sessiontoken.WithClock(clock.Now))

		c.StoreWithoutExpiry("tok-1")
		c.Store("tok-2", time.Second)
		clock.Advance(time.Second)

		_, ok := c.Read()
		assert.False(t, ok)
	})

	t.Run("store replaces previous token", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		c := sessiontoken.New(sessiontoken.WithClock(clock.Now))

		c.Store("tok-1", time.Second)
		c.Store("tok-2", time.Hour)
		clock.Advance(time.Minute)

		tok, ok := c.Read()
		assert.True(t, ok)
		assert.Equal(t, "tok-2", tok)
	})

	t.Run("clear", func(t *testing.T) {
		c := sessiontoken.New()
		c.Store("tok-1", time.Hour)
		c.Clear()

		_, ok := c.Read()
		assert.False(t, ok)
		assert.True(t, c.ExpiresAt().IsZero())
	})
}
