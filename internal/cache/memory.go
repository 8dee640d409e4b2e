package cache

import (
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryCache)
}

// memoryCache keeps entries in an expirable LRU owned by this process.
type memoryCache struct {
	entries *lru.LRU[string, []byte]
}

func newMemoryCache(cfg ProviderConfig) (Cache, error) {
	var onEvict func(string, []byte)
	if cfg.OnEvict != nil {
		onEvict = func(key string, value []byte) { cfg.OnEvict(key, value) }
	}
	return &memoryCache{entries: lru.NewLRU[string, []byte](cfg.Size, onEvict, cfg.TTL)}, nil
}

func (m *memoryCache) Get(key string) ([]byte, bool) {
	return m.entries.Get(key)
}

func (m *memoryCache) Set(key string, value []byte) {
	m.entries.Add(key, value)
}

func (m *memoryCache) Delete(key string) {
	m.entries.Remove(key)
}

func (m *memoryCache) Contains(key string) bool {
	return m.entries.Contains(key)
}

func (m *memoryCache) Len() int {
	return m.entries.Len()
}

func (m *memoryCache) Close() error {
	return nil
}
