package catalog

import (
	"sync"
)

// DetailCache caches detail responses to avoid redundant API calls
type DetailCache struct {
	mu   sync.RWMutex
	data map[int]*Anime
}

// NewDetailCache creates an empty DetailCache
func NewDetailCache() *DetailCache {
	return &DetailCache{
		data: make(map[int]*Anime),
	}
}

// Get retrieves a cached record
func (c *DetailCache) Get(id int) (*Anime, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.data[id]
	return val, ok
}

// Set stores a record in the cache
func (c *DetailCache) Set(id int, val *Anime) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[id] = val
}

// Len returns the number of cached records
func (c *DetailCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
