package dataload

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry holds one cached dataset with its expiry
type cacheEntry struct {
	dataset   *Dataset
	expiresAt time.Time
}

// ttlCache caches the loaded dataset for the configured TTL.
// Concurrent refreshes collapse into a single fetch; a manual
// Invalidate forces the next Get to reload.
type ttlCache struct {
	mu    sync.RWMutex
	entry *cacheEntry
	ttl   time.Duration
	group singleflight.Group
	now   func() time.Time
}

func newTTLCache(ttl time.Duration) *ttlCache {
	return &ttlCache{ttl: ttl, now: time.Now}
}

// get returns the cached dataset when fresh, otherwise runs fetch
// once for all concurrent callers and caches the result. The hit
// return reports whether the cache served the call.
func (c *ttlCache) get(ctx context.Context, fetch func(context.Context) (*Dataset, error)) (*Dataset, bool, error) {
	c.mu.RLock()
	entry := c.entry
	c.mu.RUnlock()

	if entry != nil && c.now().Before(entry.expiresAt) {
		return entry.dataset, true, nil
	}

	v, err, _ := c.group.Do("dataset", func() (interface{}, error) {
		// Another caller may have refreshed while we queued
		c.mu.RLock()
		entry := c.entry
		c.mu.RUnlock()
		if entry != nil && c.now().Before(entry.expiresAt) {
			return entry.dataset, nil
		}

		dataset, err := fetch(ctx)
		if err != nil {
			// Serve stale data over an error when we have any
			if entry != nil {
				return entry.dataset, nil
			}
			return nil, err
		}

		c.mu.Lock()
		c.entry = &cacheEntry{dataset: dataset, expiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return dataset, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*Dataset), false, nil
}

// invalidate drops the cached dataset
func (c *ttlCache) invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}
