// SPDX-License-Identifier: MIT

package cache

import (
	"fmt"
	"time"
)

// defaultCleanupInterval is how often the memory backend sweeps
// expired entries.
const defaultCleanupInterval = time.Minute

// New builds the cache for the configured backend. An empty backend
// string means memory; "none" disables caching entirely.
func New(backend string, redisCfg RedisConfig) (Cache, error) {
	switch backend {
	case "", "memory":
		return NewMemoryCache(defaultCleanupInterval), nil
	case "redis":
		rc, err := NewRedisCache(redisCfg)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case "none":
		return NewNoOpCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: memory, redis, none)", backend)
	}
}
