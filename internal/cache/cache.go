// Package cache stores opaque byte values under string keys with LRU and TTL
// eviction. Providers are registered by name; "memory" keeps entries in the
// process and "redis" shares them between instances through Redis/Valkey.
package cache

// EvictCallback is called when an entry is evicted from the cache.
// The Redis provider reports evicted keys with a nil value.
type EvictCallback func(key string, value []byte)

// Logger receives errors from providers whose operations can fail at runtime.
type Logger interface {
	Error(msg string, err error)
}

// Cache is a bounded key-value store.
type Cache interface {
	// Get returns the value stored under key and refreshes its recency.
	Get(key string) ([]byte, bool)

	// Set stores value under key, overwriting any previous value.
	Set(key string, value []byte)

	// Delete removes key. Deleting a missing key is a no-op.
	Delete(key string)

	// Contains reports whether key is present without refreshing its recency.
	Contains(key string) bool

	// Len returns the number of live entries.
	Len() int

	// Close releases connections held by the provider.
	Close() error
}
