// SPDX-License-Identifier: MIT

// Package cache holds rendered configuration payloads (INI/JSON/YAML
// dumps of the effective snapshot) so repeated reads between snapshot
// swaps skip re-rendering. Entries are keyed by snapshot fingerprint
// and output format; the daemon clears the cache on every swap.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ssbarnea/lintrc/internal/metrics"
)

// Cache provides thread-safe payload caching with expiration support.
type Cache interface {
	// Get retrieves a payload. Returns false if not found or expired.
	// The returned slice is shared; callers must not modify it.
	Get(key string) ([]byte, bool)
	// Set stores a copy of payload with the specified TTL.
	Set(key string, payload []byte, ttl time.Duration)
	// Delete removes a payload from the cache.
	Delete(key string)
	// Clear removes all payloads from the cache.
	Clear()
	// Stats returns cache statistics.
	Stats() CacheStats
}

// CacheStats holds cache performance counters.
type CacheStats struct {
	Hits        int64 // Successful Get operations
	Misses      int64 // Failed Get operations (not found or expired)
	Sets        int64 // Set operations
	Evictions   int64 // Expired entries cleaned up
	CurrentSize int   // Current number of cached entries
}

// RenderKey is the cache key for one rendered form of one snapshot.
func RenderKey(fingerprint, format string) string {
	return "render:" + fingerprint + ":" + format
}

const memoryBackend = "memory"

// entry is a cached payload with its expiration time.
type entry struct {
	payload    []byte
	expiration time.Time
}

func (e *entry) isExpired() bool {
	return time.Now().After(e.expiration)
}

// counters are atomic so Get can count misses under the read lock.
type counters struct {
	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64
	evictions atomic.Int64
}

// memoryCache is an in-memory implementation of Cache.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	stats   counters
	janitor *janitor
}

// NewMemoryCache creates an in-memory cache with automatic cleanup.
// The cleanupInterval determines how often expired entries are
// removed; 0 disables the janitor.
func NewMemoryCache(cleanupInterval time.Duration) Cache {
	c := &memoryCache{
		entries: make(map[string]*entry),
	}

	if cleanupInterval > 0 {
		c.janitor = &janitor{
			interval: cleanupInterval,
			stop:     make(chan struct{}),
		}
		go c.janitor.run(c)
	}

	return c
}

// Get retrieves a payload from the cache.
func (c *memoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()

	if !found || e.isExpired() {
		c.stats.misses.Add(1)
		metrics.CacheMissesTotal.WithLabelValues(memoryBackend).Inc()
		return nil, false
	}

	c.stats.hits.Add(1)
	metrics.CacheHitsTotal.WithLabelValues(memoryBackend).Inc()
	return e.payload, true
}

// Set stores a copy of the payload in the cache.
func (c *memoryCache) Set(key string, payload []byte, ttl time.Duration) {
	e := &entry{
		payload:    append([]byte(nil), payload...),
		expiration: time.Now().Add(ttl),
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()

	c.stats.sets.Add(1)
}

// Delete removes a payload from the cache.
func (c *memoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all payloads from the cache.
func (c *memoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Stats returns cache statistics.
func (c *memoryCache) Stats() CacheStats {
	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()

	return CacheStats{
		Hits:        c.stats.hits.Load(),
		Misses:      c.stats.misses.Load(),
		Sets:        c.stats.sets.Load(),
		Evictions:   c.stats.evictions.Load(),
		CurrentSize: size,
	}
}

// deleteExpired removes all expired entries and returns how many were
// deleted.
func (c *memoryCache) deleteExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for key, e := range c.entries {
		if e.isExpired() {
			delete(c.entries, key)
			count++
		}
	}

	c.stats.evictions.Add(int64(count))
	return count
}

// Close stops the background cleanup goroutine.
func (c *memoryCache) Close() error {
	if c.janitor != nil {
		c.janitor.stop <- struct{}{}
	}
	return nil
}

// janitor performs periodic cleanup of expired entries.
type janitor struct {
	interval time.Duration
	stop     chan struct{}
}

func (j *janitor) run(c *memoryCache) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-j.stop:
			return
		}
	}
}

// noOpCache does nothing, for deployments that disable caching.
type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache anything.
func NewNoOpCache() Cache {
	return &noOpCache{}
}

func (c *noOpCache) Get(key string) ([]byte, bool)                     { return nil, false }
func (c *noOpCache) Set(key string, payload []byte, ttl time.Duration) {}
func (c *noOpCache) Delete(key string)                                 {}
func (c *noOpCache) Clear()                                            {}
func (c *noOpCache) Stats() CacheStats                                 { return CacheStats{} }
