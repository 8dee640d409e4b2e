package cache

// instrumentedCache counts hits and misses of inner under a group label.
// Evictions are counted by the OnEvict wrapper installed in New.
type instrumentedCache struct {
	inner Cache
	group string
}

// newInstrumentedCache also registers a collector that reads inner.Len() at
// scrape time, so entries expired by the backend are never over-reported.
func newInstrumentedCache(inner Cache, group string) *instrumentedCache {
	registerEntriesCollector(group, inner.Len)
	return &instrumentedCache{inner: inner, group: group}
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		HitsTotal.WithLabelValues(c.group).Inc()
	} else {
		MissesTotal.WithLabelValues(c.group).Inc()
	}
	return val, ok
}

func (c *instrumentedCache) Set(key string, value []byte) { c.inner.Set(key, value) }

func (c *instrumentedCache) Delete(key string) { c.inner.Delete(key) }

func (c *instrumentedCache) Contains(key string) bool { return c.inner.Contains(key) }

func (c *instrumentedCache) Len() int { return c.inner.Len() }

// Close unregisters the entries collector and closes the underlying cache.
func (c *instrumentedCache) Close() error {
	unregisterEntriesCollector(c.group)
	return c.inner.Close()
}
