package cache

import (
	"testing"
)

// newCacheFunc builds an empty cache of the given capacity for one test.
type newCacheFunc func(t *testing.T, size int, onEvict EvictCallback) Cache

// runContract exercises the behaviour every provider must share.
func runContract(t *testing.T, newCache newCacheFunc) {
	t.Run("GetSet", func(t *testing.T) {
		c := newCache(t, 10, nil)

		val, ok := c.Get("page:a")
		if ok || val != nil {
			t.Fatalf("Expected miss with nil value, got %q, %v", val, ok)
		}

		c.Set("page:a", []byte("<html>a</html>"))
		val, ok = c.Get("page:a")
		if !ok || string(val) != "<html>a</html>" {
			t.Fatalf("Expected hit with stored value, got %q, %v", val, ok)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		c := newCache(t, 10, nil)

		c.Set("k", []byte("v1"))
		c.Set("k", []byte("v2"))

		if val, _ := c.Get("k"); string(val) != "v2" {
			t.Fatalf("Expected v2, got %q", val)
		}
		if c.Len() != 1 {
			t.Fatalf("Expected Len 1 after overwrite, got %d", c.Len())
		}
	})

	t.Run("ContainsAndLen", func(t *testing.T) {
		c := newCache(t, 10, nil)

		if c.Contains("absent") || c.Len() != 0 {
			t.Fatalf("Expected empty cache, Len=%d", c.Len())
		}
		c.Set("a", []byte("1"))
		c.Set("b", []byte("2"))
		if !c.Contains("a") || c.Len() != 2 {
			t.Fatalf("Expected two entries including a, Len=%d", c.Len())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		c := newCache(t, 10, nil)

		c.Set("a", []byte("1"))
		c.Set("b", []byte("2"))
		c.Delete("a")
		c.Delete("never-set")

		if c.Contains("a") {
			t.Fatal("Deleted key should not be present")
		}
		if _, ok := c.Get("a"); ok {
			t.Fatal("Deleted key should miss")
		}
		if c.Len() != 1 || !c.Contains("b") {
			t.Fatalf("Expected only b to remain, Len=%d", c.Len())
		}
	})

	t.Run("EvictsLeastRecentlyUsed", func(t *testing.T) {
		var evicted []string
		c := newCache(t, 2, func(key string, _ []byte) { evicted = append(evicted, key) })

		c.Set("a", []byte("1"))
		c.Set("b", []byte("2"))
		_, _ = c.Get("a")
		c.Set("c", []byte("3"))

		if len(evicted) != 1 || evicted[0] != "b" {
			t.Fatalf("Expected b to be evicted, got %v", evicted)
		}
		if c.Contains("b") || !c.Contains("a") || !c.Contains("c") {
			t.Fatal("Expected a and c to remain after evicting b")
		}
	})
}
