package options

import (
	"os"
	"sync"
	"time"

	"scenario-builder/internal/model"
)

// cacheEntry is one cached option set.
type cacheEntry struct {
	options   []model.Option
	expiresAt time.Time
}

// ResponseCache provides in-memory caching of per-category option sets.
// Option sets are versioned upstream and change rarely, so a short TTL is
// safe; the cache exists to keep local development and the offline CLI from
// hammering the provider. Disabled unless ENABLE_SETTINGS_CACHE=true, and
// always disabled when API_ENV=production.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
}

var globalCache *ResponseCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled.
// Returns nil if caching is disabled.
func GetCache() *ResponseCache {
	if os.Getenv("ENABLE_SETTINGS_CACHE") != "true" {
		return nil
	}
	if os.Getenv("API_ENV") == "production" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 15 * time.Minute
		if ttlStr := os.Getenv("SETTINGS_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalCache = &ResponseCache{
			store: make(map[string]*cacheEntry),
			ttl:   ttl,
		}

		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached option set if present and not expired.
func (c *ResponseCache) Get(categoryKey string) ([]model.Option, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[categoryKey]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.options, true
}

// Set stores an option set for a category.
func (c *ResponseCache) Set(categoryKey string, opts []model.Option) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[categoryKey] = &cacheEntry{
		options:   opts,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries from the cache.
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*cacheEntry)
}

// cleanup periodically removes expired entries.
func (c *ResponseCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.expiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}
