// Package cache provides a thread-safe, in-memory key-value store with
// TTL-based expiration and size-capped eviction. pixelmill uses it to hold
// encoded variant outputs keyed by content digest + preset; decoded pixel
// buffers are never stored here.
package cache

import (
	"sort"
	"sync"
	"time"

	"pixelmill/pkg/logger"
)

const (
	DefaultMaxSize = 100 // MB
	DefaultTTL     = 30 * time.Minute

	// GCInterval is how often expired entries are swept. Kept coarse to
	// avoid frequent write-lock contention.
	GCInterval = 5 * time.Minute
)

// Config sizes the cache. The zero value yields a disabled cache.
type Config struct {
	Enabled       bool
	MaxCapacityMB int
	TTL           time.Duration
}

// Item is one stored value with its expiry.
type Item struct {
	Data      []byte
	ExpiresAt time.Time
	Size      int64
}

// Cache is the in-memory store. A disabled Cache is safe to use and acts
// as a pass-through (Set drops, Get misses).
type Cache struct {
	sync.RWMutex
	items     map[string]Item
	totalSize int64
	maxSize   int64
	ttl       time.Duration
	enabled   bool
}

// New initializes the cache and, when enabled, starts the background sweep.
func New(cfg Config) *Cache {
	limitMB := int64(cfg.MaxCapacityMB)
	if limitMB <= 0 {
		limitMB = DefaultMaxSize
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &Cache{
		maxSize: limitMB * 1024 * 1024,
		ttl:     ttl,
		enabled: cfg.Enabled,
	}

	if c.enabled {
		c.items = make(map[string]Item)
		go c.startGC()
		logger.LogInfo("Result cache initialized: %d MB limit, TTL %s", limitMB, ttl)
	}
	return c
}

// Set stores a value with the configured TTL. Items larger than half the
// capacity are rejected outright; when full, entries closest to expiry are
// evicted first.
func (c *Cache) Set(key string, data []byte) {
	if !c.enabled {
		return
	}

	c.Lock()
	defer c.Unlock()

	size := int64(len(data))
	if size > c.maxSize/2 {
		return
	}

	if c.totalSize+size > c.maxSize {
		c.prune()
	}

	if old, exists := c.items[key]; exists {
		c.totalSize -= old.Size
	}

	c.items[key] = Item{
		Data:      data,
		ExpiresAt: time.Now().Add(c.ttl),
		Size:      size,
	}
	c.totalSize += size
}

// Get retrieves an item if it exists and hasn't expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}

	c.RLock()
	defer c.RUnlock()

	item, found := c.items[key]
	if !found || time.Now().After(item.ExpiresAt) {
		return nil, false
	}
	return item.Data, true
}

// Delete explicitly removes an item.
func (c *Cache) Delete(key string) {
	if !c.enabled {
		return
	}

	c.Lock()
	defer c.Unlock()

	if item, found := c.items[key]; found {
		delete(c.items, key)
		c.totalSize -= item.Size
	}
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	if !c.enabled {
		return 0
	}
	c.RLock()
	defer c.RUnlock()
	return len(c.items)
}

// prune evicts soonest-to-expire entries until usage drops to 80% of
// capacity. Caller must hold the write lock.
func (c *Cache) prune() {
	if len(c.items) == 0 {
		return
	}

	target := int64(float64(c.maxSize) * 0.80)

	type candidate struct {
		key       string
		expiresAt time.Time
		size      int64
	}
	candidates := make([]candidate, 0, len(c.items))
	for k, v := range c.items {
		candidates = append(candidates, candidate{k, v.ExpiresAt, v.Size})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].expiresAt.Before(candidates[j].expiresAt)
	})

	for _, cand := range candidates {
		if c.totalSize <= target {
			break
		}
		delete(c.items, cand.key)
		c.totalSize -= cand.size
	}
}

// startGC sweeps expired entries in the background.
func (c *Cache) startGC() {
	ticker := time.NewTicker(GCInterval)
	for range ticker.C {
		c.Lock()
		now := time.Now()
		removed := 0
		for k, v := range c.items {
			if now.After(v.ExpiresAt) {
				delete(c.items, k)
				c.totalSize -= v.Size
				removed++
			}
		}
		c.Unlock()
		if removed > 0 {
			logger.LogInfo("Cache GC: removed %d expired entries", removed)
		}
	}
}
