// pkg/memcache/settings_cache.go
package memcache

import (
	"sync"
)

// SettingsCache is the process-wide configuration map: defaults merged with
// server-side overrides, replaced wholesale on refresh, never partially
// invalidated.
type SettingsCache struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewSettingsCache(defaults map[string]string) *SettingsCache {
	data := make(map[string]string, len(defaults))
	for k, v := range defaults {
		data[k] = v
	}
	return &SettingsCache{data: data}
}

func (c *SettingsCache) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[key]
}

// Replace swaps the whole map: defaults first, overrides on top.
func (c *SettingsCache) Replace(defaults, overrides map[string]string) {
	next := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		next[k] = v
	}
	for k, v := range overrides {
		next[k] = v
	}

	c.mu.Lock()
	c.data = next
	c.mu.Unlock()
}

// Snapshot returns a copy safe to hand to response encoders.
func (c *SettingsCache) Snapshot() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.data))
	for k, v := range c.data {
		out[k] = v
	}
	return out
}
