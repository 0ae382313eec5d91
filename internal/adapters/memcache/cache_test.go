package memcache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"residency_hub/internal/adapters/memcache"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCache_TTL(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := memcache.New(time.Minute, func() time.Time { return now })
	ctx := context.Background()

	if err := c.Set(ctx, "k", payload{Name: "a", Count: 1}); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	now = now.Add(59 * time.Second)
	if ok, err := c.Get(ctx, "k", &got); !ok || err != nil || got.Name != "a" {
		t.Fatalf("fresh get: ok=%v err=%v got=%+v", ok, err, got)
	}

	now = now.Add(time.Second)
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Fatal("entry at exactly TTL must be absent")
	}
}

func TestCache_SetReplacesAndRestartsClock(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := memcache.New(time.Minute, func() time.Time { return now })
	ctx := context.Background()

	_ = c.Set(ctx, "k", payload{Count: 1})
	now = now.Add(50 * time.Second)
	_ = c.Set(ctx, "k", payload{Count: 2})
	now = now.Add(50 * time.Second)

	var got payload
	if ok, _ := c.Get(ctx, "k", &got); !ok || got.Count != 2 {
		t.Fatalf("replaced entry: ok=%v got=%+v", ok, got)
	}
}

func TestCache_InvalidateAll(t *testing.T) {
	c := memcache.New(time.Minute, nil)
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, payload{Name: k})
	}
	if c.Len() != 3 {
		t.Fatalf("len=%d", c.Len())
	}
	if err := c.InvalidateAll(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	var got payload
	if ok, _ := c.Get(ctx, "a", &got); ok || c.Len() != 0 {
		t.Fatalf("entries survived invalidation, len=%d", c.Len())
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := memcache.New(time.Minute, nil)
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var p payload
			for range 100 {
				_ = c.Set(ctx, "shared", payload{Count: i})
				_, _ = c.Get(ctx, "shared", &p)
				if i == 0 {
					_ = c.InvalidateAll(ctx)
				}
			}
		}(i)
	}
	wg.Wait()
}
