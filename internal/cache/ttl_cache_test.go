package cache

import (
	"testing"
	"time"
)

func TestTTLCacheStoresAndExpires(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("warm", 1, time.Minute)
	if got, ok := c.Get("warm"); !ok || got != 1 {
		t.Fatalf("expected warm hit, got %v %v", got, ok)
	}

	c.Set("expired", 2, -time.Second)
	if _, ok := c.Get("expired"); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if c.Len() != 1 {
		t.Fatalf("expected lazy eviction to drop expired entry, got %d", c.Len())
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache[string, string]()
	c.Set("pinned", "value", 0)
	if got, ok := c.Get("pinned"); !ok || got != "value" {
		t.Fatalf("expected pinned entry, got %q %v", got, ok)
	}
}

func TestTTLCacheDelete(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("gone", 3, time.Minute)
	c.Delete("gone")
	if _, ok := c.Get("gone"); ok {
		t.Fatalf("expected deleted entry to miss")
	}
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	var c NoopCache[string, int]
	c.Set("k", 1, time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("noop cache must never hit")
	}
}
