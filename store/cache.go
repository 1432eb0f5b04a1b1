// Package store holds the process-wide snapshot cache. It is the only
// shared mutable state in the pipeline.
package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"newbuild-aggregator/models"
)

// Snapshot is one fully-computed, immutable view of the aggregated dataset.
// Developments and Builders are always computed together, so readers never
// observe one against a stale version of the other.
type Snapshot struct {
	Units        []*models.Unit
	Developments []*models.Development
	Builders     []*models.Builder
	ComputedAt   time.Time
}

// Cache memoizes the latest Snapshot for a bounded TTL. There is no manual
// invalidation path: a snapshot expires or the process restarts.
type Cache struct {
	ttl   time.Duration
	group singleflight.Group

	mu   sync.RWMutex
	snap *Snapshot
}

// NewCache creates a Cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

// GetOrRefresh returns the cached snapshot when it is still fresh at `now`,
// and otherwise rebuilds it. Concurrent callers during a refresh share a
// single rebuild; readers see either the old complete snapshot or the new
// one, never a partial state.
func (c *Cache) GetOrRefresh(ctx context.Context, now time.Time, rebuild func(context.Context) (*Snapshot, error)) (*Snapshot, error) {
	if snap := c.fresh(now); snap != nil {
		return snap, nil
	}

	v, err, _ := c.group.Do("snapshot", func() (interface{}, error) {
		// another caller may have finished the refresh while we waited
		if snap := c.fresh(time.Now()); snap != nil {
			return snap, nil
		}

		fresh, err := rebuild(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.snap = fresh
		c.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Peek returns the current snapshot without refreshing, or nil.
func (c *Cache) Peek() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

func (c *Cache) fresh(now time.Time) *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap != nil && now.Sub(c.snap.ComputedAt) < c.ttl {
		return c.snap
	}
	return nil
}
