// Package token caches short-lived provider access tokens and refreshes
// them on demand or in the background.
package token

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Token is an access token with its expiry. A token is valid only
// strictly before ExpiresAt; sources subtract their provider's safety
// margin when computing it.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Valid reports whether the token can still be used at the given moment.
func (t Token) Valid(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

// Source obtains a fresh token from a provider.
type Source interface {
	Fetch(ctx context.Context) (Token, error)
}

// Cache holds one provider's token. Token() refreshes synchronously
// when the cached value is missing or expired; concurrent callers share
// a single in-flight refresh. Instances are independent and never share
// a lock.
type Cache struct {
	source Source

	mu      sync.RWMutex
	current Token

	group singleflight.Group
	now   func() time.Time
}

// NewCache creates a cache backed by the given source.
func NewCache(source Source) *Cache {
	return &Cache{
		source: source,
		now:    time.Now,
	}
}

// Token returns a valid token, refreshing first if needed. A failed
// refresh is not cached; the next call retries immediately.
func (c *Cache) Token(ctx context.Context) (string, error) {
	c.mu.RLock()
	current := c.current
	c.mu.RUnlock()

	if current.Valid(c.now()) {
		return current.Value, nil
	}

	return c.refresh(ctx, false)
}

// refresh fetches a new token through the flight group, so on-demand
// and background refreshes never run in parallel. force skips the
// cached-token re-check; the background refresher uses it to renew a
// token that is still valid but close to expiry.
func (c *Cache) refresh(ctx context.Context, force bool) (string, error) {
	v, err, _ := c.group.Do("refresh", func() (any, error) {
		if !force {
			// Re-check under the flight: another caller may have just
			// refreshed before we were admitted.
			c.mu.RLock()
			cached := c.current
			c.mu.RUnlock()
			if cached.Valid(c.now()) {
				return cached.Value, nil
			}
		}

		fresh, err := c.source.Fetch(ctx)
		if err != nil {
			return "", err
		}

		c.mu.Lock()
		c.current = fresh
		c.mu.Unlock()
		return fresh.Value, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// ExpiresAt returns the current token's expiry, zero when no token is
// cached.
func (c *Cache) ExpiresAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.ExpiresAt
}

// Refresher proactively refreshes a cache's token before it expires, so
// request-path calls rarely block on a synchronous refresh.
type Refresher struct {
	cache  *Cache
	logger *zap.Logger

	checkInterval time.Duration
	refreshWithin time.Duration
	retryDelay    time.Duration
}

// NewRefresher creates a background refresher: checks every 15 minutes,
// refreshes once the token is within 30 minutes of expiry, retries
// after 1 minute on failure.
func NewRefresher(cache *Cache, logger *zap.Logger) *Refresher {
	return &Refresher{
		cache:         cache,
		logger:        logger,
		checkInterval: 15 * time.Minute,
		refreshWithin: 30 * time.Minute,
		retryDelay:    time.Minute,
	}
}

// Run loops until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Token refresher stopped")
			return
		case <-timer.C:
		}

		delay := r.checkInterval
		if r.due() {
			if err := r.refresh(ctx); err != nil {
				r.logger.Error("Background token refresh failed", zap.Error(err))
				delay = r.retryDelay
			} else {
				r.logger.Info("Token refreshed in background",
					zap.Time("expires_at", r.cache.ExpiresAt()),
				)
			}
		}
		timer.Reset(delay)
	}
}

func (r *Refresher) due() bool {
	expiresAt := r.cache.ExpiresAt()
	if expiresAt.IsZero() {
		return true
	}
	return time.Until(expiresAt) <= r.refreshWithin
}

func (r *Refresher) refresh(ctx context.Context) error {
	_, err := r.cache.refresh(ctx, true)
	return err
}
