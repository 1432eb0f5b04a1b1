package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"newbuild-aggregator/models"
)

func snapshotAt(ts time.Time) *Snapshot {
	return &Snapshot{
		Developments: []*models.Development{{Slug: "gomera-star"}},
		ComputedAt:   ts,
	}
}

func TestCacheFreshHit(t *testing.T) {
	c := NewCache(time.Hour)
	now := time.Now()

	rebuilds := 0
	rebuild := func(context.Context) (*Snapshot, error) {
		rebuilds++
		return snapshotAt(now), nil
	}

	if _, err := c.GetOrRefresh(context.Background(), now, rebuild); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrRefresh(context.Background(), now.Add(time.Minute), rebuild); err != nil {
		t.Fatal(err)
	}

	if rebuilds != 1 {
		t.Errorf("rebuild ran %d times within TTL; want 1", rebuilds)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(time.Hour)
	start := time.Now().Add(-2 * time.Hour)

	rebuilds := 0
	rebuild := func(context.Context) (*Snapshot, error) {
		rebuilds++
		return snapshotAt(start), nil
	}

	// first snapshot computed two hours ago relative to the second read
	if _, err := c.GetOrRefresh(context.Background(), start, rebuild); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrRefresh(context.Background(), time.Now(), rebuild); err != nil {
		t.Fatal(err)
	}

	if rebuilds != 2 {
		t.Errorf("rebuild ran %d times across an expired TTL; want 2", rebuilds)
	}
}

func TestCacheConcurrentSingleRebuild(t *testing.T) {
	c := NewCache(time.Hour)
	now := time.Now()

	var rebuilds int32
	rebuild := func(context.Context) (*Snapshot, error) {
		atomic.AddInt32(&rebuilds, 1)
		time.Sleep(20 * time.Millisecond)
		return snapshotAt(time.Now()), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := c.GetOrRefresh(context.Background(), now, rebuild)
			if err != nil {
				t.Error(err)
				return
			}
			if len(snap.Developments) != 1 {
				t.Error("caller observed a partial snapshot")
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&rebuilds); got != 1 {
		t.Errorf("rebuild ran %d times for concurrent callers; want 1", got)
	}
}

func TestCachePeek(t *testing.T) {
	c := NewCache(time.Hour)
	if c.Peek() != nil {
		t.Error("Peek on empty cache should be nil")
	}

	now := time.Now()
	c.GetOrRefresh(context.Background(), now, func(context.Context) (*Snapshot, error) {
		return snapshotAt(now), nil
	})

	if c.Peek() == nil {
		t.Error("Peek after refresh should return the snapshot")
	}
}
