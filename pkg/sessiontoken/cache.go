package sessiontoken

import (
	"sync"
	"time"
)

// Cache holds at most one session token.
type Cache struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store replaces the held token. The token expires ttl from now, so a
// non-positive ttl stores a token that is already expired.
func (c *Cache) Store(token string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
	c.expiresAt = c.now().Add(ttl)
}

// StoreWithoutExpiry replaces the held token with one that stays valid until
// Clear or the next Store.
func (c *Cache) StoreWithoutExpiry(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
	c.expiresAt = time.Time{}
}

// Read returns the token while the current time is strictly before its expiry.
func (c *Cache) Read() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.token == "" {
		return "", false
	}
	if !c.expiresAt.IsZero() && !c.now().Before(c.expiresAt) {
		return "", false
	}
	return c.token, true
}

// ExpiresAt returns the expiry of the held token; zero when there is none
// or it never expires.
func (c *Cache) ExpiresAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiresAt
}

// Clear drops the token so that subsequent reads report it absent.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = ""
	c.expiresAt = time.Time{}
}
