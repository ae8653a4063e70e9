package cache

import (
	"bytes"
	"testing"
	"time"
)

// fakeClock advances one second per reading so entries order by insertion
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time {
	f.t = f.t.Add(time.Second)
	return f.t
}

func newTestCache(config Config) (*Cache, *fakeClock) {
	c := New(config)
	clock := &fakeClock{t: time.Unix(0, 0)}
	c.now = clock.now
	return c, clock
}

func TestCache_GetPut(t *testing.T) {
	cache, _ := newTestCache(DefaultConfig())

	key := Key("frame", "800", "480")
	data := []byte("<svg></svg>")
	cache.Put(key, data)
	data[0] = 'X' // the cache keeps its own copy

	retrieved, found := cache.Get(key)
	if !found {
		t.Fatal("Data not found in cache")
	}
	if !bytes.Equal(retrieved, []byte("<svg></svg>")) {
		t.Errorf("Retrieved data doesn't match: got %s", retrieved)
	}

	if _, found := cache.Get("non-existent"); found {
		t.Error("Found non-existent key")
	}

	stats := cache.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Expected 1 hit and 1 miss, got %+v", stats)
	}
	if stats.EntryCount != 1 || stats.TotalSize != int64(len(data)) {
		t.Errorf("Unexpected size accounting: %+v", stats)
	}
}

func TestCache_Replace(t *testing.T) {
	cache, _ := newTestCache(DefaultConfig())
	cache.Put("k", []byte("aaaa"))
	cache.Put("k", []byte("bb"))

	got, _ := cache.Get("k")
	if string(got) != "bb" {
		t.Errorf("Get() = %q, want bb", got)
	}
	if stats := cache.GetStats(); stats.TotalSize != 2 || stats.EntryCount != 1 {
		t.Errorf("stats after replace = %+v", stats)
	}
}

func TestCache_Eviction(t *testing.T) {
	tests := []struct {
		name     string
		strategy EvictionStrategy
		evicted  string
	}{
		{"LRU", LRU, "b"},  // a was read after b was written
		{"LFU", LFU, "b"},  // a has one access, b none
		{"FIFO", FIFO, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, _ := newTestCache(Config{MaxSize: 8, Strategy: tt.strategy})
			cache.Put("a", []byte("aaaa"))
			cache.Put("b", []byte("bbbb"))
			cache.Get("a")
			cache.Put("c", []byte("cccc"))

			if _, found := cache.Get(tt.evicted); found {
				t.Errorf("expected %q to be evicted", tt.evicted)
			}
			if stats := cache.GetStats(); stats.Evictions != 1 || stats.EntryCount != 2 || stats.TotalSize != 8 {
				t.Errorf("stats = %+v", stats)
			}
		})
	}
}

func TestCache_TooLarge(t *testing.T) {
	cache, _ := newTestCache(Config{MaxSize: 4})
	cache.Put("big", []byte("12345"))
	if _, found := cache.Get("big"); found {
		t.Error("entries larger than the cache should not be stored")
	}
}

func TestCache_Expiry(t *testing.T) {
	cache, clock := newTestCache(Config{MaxAge: time.Minute})
	cache.Put("k", []byte("v"))

	if _, found := cache.Get("k"); !found {
		t.Fatal("fresh entry should be found")
	}
	clock.t = clock.t.Add(2 * time.Minute)
	if _, found := cache.Get("k"); found {
		t.Error("expired entry should not be found")
	}
	if stats := cache.GetStats(); stats.EntryCount != 0 {
		t.Errorf("expired entry not removed: %+v", stats)
	}
}

func TestCache_DeleteClear(t *testing.T) {
	cache, _ := newTestCache(DefaultConfig())
	cache.Put("a", []byte("1"))
	cache.Put("b", []byte("2"))

	cache.Delete("a")
	if _, found := cache.Get("a"); found {
		t.Error("deleted entry still present")
	}
	cache.Clear()
	if _, found := cache.Get("b"); found {
		t.Error("Clear() left entries behind")
	}
	if stats := cache.GetStats(); stats.TotalSize != 0 || stats.EntryCount != 0 {
		t.Errorf("stats after Clear = %+v", stats)
	}
}

func TestKey(t *testing.T) {
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("Key must separate its inputs")
	}
	if Key("x", "y") != Key("x", "y") {
		t.Error("Key must be deterministic")
	}
}
