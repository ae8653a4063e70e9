// Package cache keeps rendered frames in memory so repeated exports of an
// unchanged document skip the draw pass.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Cache stores rendered frames keyed by their inputs
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*Entry
	maxSize  int64 // Maximum total size in bytes
	maxAge   time.Duration
	strategy EvictionStrategy
	stats    Stats
	now      func() time.Time
}

// Entry represents a single cached frame
type Entry struct {
	Key         string
	Data        []byte
	Size        int64
	Created     time.Time
	LastAccess  time.Time
	AccessCount int
}

// Stats tracks cache performance metrics
type Stats struct {
	Hits       int64 `json:"hits"`
	Misses     int64 `json:"misses"`
	Evictions  int64 `json:"evictions"`
	TotalSize  int64 `json:"total_size"`
	EntryCount int   `json:"entry_count"`
}

// EvictionStrategy defines how entries are removed when the cache is full
type EvictionStrategy int

const (
	// LRU removes least recently used entries
	LRU EvictionStrategy = iota
	// LFU removes least frequently used entries
	LFU
	// FIFO removes oldest entries first
	FIFO
)

// Config holds cache configuration
type Config struct {
	MaxSize  int64            // Maximum cache size in bytes (default: 16MB)
	MaxAge   time.Duration    // Maximum age for entries, 0 never expires
	Strategy EvictionStrategy // Eviction strategy (default: LRU)
}

// DefaultConfig returns the default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxSize:  16 << 20,
		Strategy: LRU,
	}
}

// New creates a new cache instance
func New(config Config) *Cache {
	if config.MaxSize <= 0 {
		config.MaxSize = DefaultConfig().MaxSize
	}
	return &Cache{
		entries:  make(map[string]*Entry),
		maxSize:  config.MaxSize,
		maxAge:   config.MaxAge,
		strategy: config.Strategy,
		now:      time.Now,
	}
}

// Get retrieves a cached frame. The returned slice must not be modified.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		c.stats.Misses++
		return nil, false
	}

	if c.isExpired(entry) {
		c.removeLocked(key)
		c.stats.Misses++
		return nil, false
	}

	entry.LastAccess = c.now()
	entry.AccessCount++
	c.stats.Hits++
	return entry.Data, true
}

// Put stores a frame. Frames larger than the whole cache are not stored.
func (c *Cache) Put(key string, data []byte) {
	size := int64(len(data))
	if size > c.maxSize {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.removeLocked(key)
	}
	c.ensureSpaceLocked(size)

	now := c.now()
	c.entries[key] = &Entry{
		Key:        key,
		Data:       append([]byte(nil), data...),
		Size:       size,
		Created:    now,
		LastAccess: now,
	}
	c.stats.TotalSize += size
	c.stats.EntryCount = len(c.entries)
}

// Delete removes an entry
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
}

// Clear removes every entry. Stats counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
	c.stats.TotalSize = 0
	c.stats.EntryCount = 0
}

// GetStats returns cache statistics
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Key generates a cache key from inputs
func Key(inputs ...string) string {
	h := sha256.New()
	for _, input := range inputs {
		h.Write([]byte(input))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) isExpired(entry *Entry) bool {
	// If maxAge is 0 or negative, entries never expire
	if c.maxAge <= 0 {
		return false
	}
	return c.now().Sub(entry.Created) > c.maxAge
}

func (c *Cache) removeLocked(key string) {
	entry, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	c.stats.TotalSize -= entry.Size
	c.stats.EntryCount = len(c.entries)
}

func (c *Cache) ensureSpaceLocked(needed int64) {
	for c.stats.TotalSize+needed > c.maxSize && len(c.entries) > 0 {
		victim := c.victimLocked()
		if victim == nil {
			break
		}
		c.removeLocked(victim.Key)
		c.stats.Evictions++
	}
}

// victimLocked picks the entry to evict according to the strategy
func (c *Cache) victimLocked() *Entry {
	var victim *Entry
	for _, entry := range c.entries {
		if victim == nil {
			victim = entry
			continue
		}
		switch c.strategy {
		case LFU:
			if entry.AccessCount < victim.AccessCount {
				victim = entry
			}
		case FIFO:
			if entry.Created.Before(victim.Created) {
				victim = entry
			}
		default:
			if entry.LastAccess.Before(victim.LastAccess) {
				victim = entry
			}
		}
	}
	return victim
}
