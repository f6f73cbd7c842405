package cache

import (
	"testing"
	"time"
)

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	if _, ok := c.Get("a"); !ok { // a becomes most recent
		t.Fatalf("expected a")
	}
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Fatalf("a should remain, got %q ok=%v", v, ok)
	}
	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}
}

func TestLRUCache_TTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[int](10, time.Second)
	c.now = func() time.Time { return now }

	c.Set("x", 1)
	c.Set("y", 2)
	now = now.Add(500 * time.Millisecond)
	c.Set("y", 3) // refreshes y

	now = now.Add(700 * time.Millisecond)
	if _, ok := c.Get("x"); ok {
		t.Fatalf("x should have expired")
	}
	if v, ok := c.Get("y"); !ok || v != 3 {
		t.Fatalf("y should be fresh, got %d ok=%v", v, ok)
	}

	now = now.Add(2 * time.Second)
	if removed := c.CleanExpired(); removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if c.Size() != 0 {
		t.Fatalf("expected empty cache, got %d", c.Size())
	}
}

func TestLRUCache_Delete(t *testing.T) {
	c := NewLRUCache[string](5, time.Minute)
	c.Set("k", "v")
	c.Delete("k")
	c.Delete("missing")
	if _, ok := c.Get("k"); ok {
		t.Fatalf("k should be gone")
	}
}

func TestManager_StopIsIdempotent(t *testing.T) {
	m := NewManager()
	m.Register(NewLRUCache[string](1, time.Minute))
	m.StartCleanup(10 * time.Millisecond)
	time.Sleep(25 * time.Millisecond)
	m.Stop()
	m.Stop()

	NewManager().Stop() // never started
}
