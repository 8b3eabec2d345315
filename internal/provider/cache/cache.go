package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"stockmcp/internal/provider"
)

// entry holds one cached value with expiry.
type entry[V any] struct {
	expiresAt time.Time
	value     V
}

// Source caches snapshot and search results for a TTL, coalescing
// concurrent refreshes of the same key with singleflight. Bar lookups pass
// straight through: recency is the whole point of those.
type Source struct {
	S        provider.Source
	TTL      time.Duration
	MaxItems int

	mu        sync.RWMutex
	snapshots map[string]entry[provider.Snapshot] // key: symbol
	searches  map[string]entry[[]provider.Match]  // key: query

	sf singleflight.Group
}

func (c *Source) RecentBars(ctx context.Context, symbol string, window provider.Period) ([]provider.Bar, error) {
	return c.S.RecentBars(ctx, symbol, window)
}

func (c *Source) History(ctx context.Context, symbol string, period provider.Period) ([]provider.Bar, error) {
	return c.S.History(ctx, symbol, period)
}

func (c *Source) Snapshot(ctx context.Context, symbol string) (provider.Snapshot, error) {
	if c.TTL <= 0 {
		return c.S.Snapshot(ctx, symbol)
	}

	c.mu.RLock()
	e, ok := c.snapshots[symbol]
	c.mu.RUnlock()
	if ok && time.Now().Before(e.expiresAt) {
		return e.value, nil
	}

	v, err, _ := c.sf.Do("snapshot:"+symbol, func() (any, error) {
		snap, err := c.S.Snapshot(ctx, symbol)
		if err != nil {
			return provider.Snapshot{}, err
		}
		c.mu.Lock()
		if c.snapshots == nil {
			c.snapshots = make(map[string]entry[provider.Snapshot])
		}
		c.snapshots[symbol] = entry[provider.Snapshot]{expiresAt: time.Now().Add(c.TTL), value: snap}
		evict(c.snapshots, c.MaxItems)
		c.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		// A stale snapshot beats failing the caller outright.
		if ok {
			return e.value, nil
		}
		return provider.Snapshot{}, err
	}
	return v.(provider.Snapshot), nil
}

func (c *Source) Search(ctx context.Context, query string) ([]provider.Match, error) {
	if c.TTL <= 0 {
		return c.S.Search(ctx, query)
	}

	c.mu.RLock()
	e, ok := c.searches[query]
	c.mu.RUnlock()
	if ok && time.Now().Before(e.expiresAt) {
		return e.value, nil
	}

	v, err, _ := c.sf.Do("search:"+query, func() (any, error) {
		matches, err := c.S.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.searches == nil {
			c.searches = make(map[string]entry[[]provider.Match])
		}
		c.searches[query] = entry[[]provider.Match]{expiresAt: time.Now().Add(c.TTL), value: matches}
		evict(c.searches, c.MaxItems)
		c.mu.Unlock()
		return matches, nil
	})
	if err != nil {
		if ok {
			return e.value, nil
		}
		return nil, err
	}
	return v.([]provider.Match), nil
}

// evict drops expired entries first, then arbitrary ones, until the map is
// within max. Best-effort; called under the write lock.
func evict[V any](items map[string]entry[V], max int) {
	if max <= 0 || len(items) <= max {
		return
	}
	now := time.Now()
	for k, v := range items {
		if now.After(v.expiresAt) {
			delete(items, k)
		}
		if len(items) <= max {
			return
		}
	}
	for k := range items {
		if len(items) <= max {
			return
		}
		delete(items, k)
	}
}
