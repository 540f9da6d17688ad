package cache

import (
	"strings"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	k1 := CacheKey("https://example.com/a")
	k2 := CacheKey("https://example.com/b")
	if !strings.HasPrefix(k1, "biaslab:v1:") {
		t.Errorf("key = %q, want versioned prefix", k1)
	}
	if k1 == k2 {
		t.Error("different URLs must not collide")
	}
	if k1 != CacheKey("https://example.com/a") {
		t.Error("key must be stable")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}
	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := c.Get("k"); !ok || string(v) != "v" {
		t.Errorf("Get = %q,%v", v, ok)
	}
	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("Get after Delete should miss")
	}
}

func TestDiskCache(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set(CacheKey("https://example.com/a"), []byte("article text"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := c.Get(CacheKey("https://example.com/a")); !ok || string(v) != "article text" {
		t.Errorf("Get = %q,%v", v, ok)
	}

	// Already-expired entries are treated as misses and removed.
	if err := c.Set("stale", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := c.Get("stale"); ok {
		t.Error("expired entry should miss")
	}
}

func TestLayeredCache_Promotion(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Drop the memory tier; the disk tier must still serve and re-prime it.
	if err := c.memory.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if v, ok := c.Get("k"); !ok || string(v) != "v" {
		t.Fatalf("Get after memory clear = %q,%v", v, ok)
	}
	if _, ok := c.memory.Get("k"); !ok {
		t.Error("disk hit should promote to memory")
	}
}
