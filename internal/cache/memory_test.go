package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache()
	t.Cleanup(c.Stop)
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("setting: %v", err)
	}

	got, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("getting: %v", err)
	}
	if string(got) != "value" {
		t.Fatalf("got %q, want %q", got, "value")
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Get(context.Background(), "absent")
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got: %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("setting: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	_, err := c.Get(ctx, "key")
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expired entry to miss, got: %v", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("setting: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("deleting: %v", err)
	}

	_, err := c.Get(ctx, "key")
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss after delete, got: %v", err)
	}
}

func TestMemoryCacheGetOrSet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	calls := 0
	compute := func() ([]byte, error) {
		calls++
		return []byte("computed"), nil
	}

	got, err := c.GetOrSet(ctx, "key", time.Minute, compute)
	if err != nil {
		t.Fatalf("first GetOrSet: %v", err)
	}
	if string(got) != "computed" {
		t.Fatalf("got %q, want %q", got, "computed")
	}

	// Second call hits the cached value.
	if _, err := c.GetOrSet(ctx, "key", time.Minute, compute); err != nil {
		t.Fatalf("second GetOrSet: %v", err)
	}
	if calls != 1 {
		t.Fatalf("compute ran %d times, want 1", calls)
	}
}

func TestMemoryCacheGetOrSetPropagatesError(t *testing.T) {
	c := newTestCache(t)

	wantErr := errors.New("backend down")
	_, err := c.GetOrSet(context.Background(), "key", time.Minute, func() ([]byte, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected compute error, got: %v", err)
	}

	// A failed compute must not poison the key.
	_, err = c.Get(context.Background(), "key")
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss after failed compute, got: %v", err)
	}
}

func TestMemoryCacheGetReturnsCopy(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("setting: %v", err)
	}

	got, _ := c.Get(ctx, "key")
	got[0] = 'X'

	again, _ := c.Get(ctx, "key")
	if string(again) != "value" {
		t.Fatalf("stored value mutated through returned slice: %q", again)
	}
}
