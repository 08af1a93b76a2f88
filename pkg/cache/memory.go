package cache

import (
	"sync"
	"time"
)

// memoryDriver is the in-process fallback. Entries are evicted lazily on
// read; good enough for the small, short-lived keys this app stores.
type memoryDriver struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

func newMemoryDriver() *memoryDriver {
	return &memoryDriver{entries: make(map[string]memoryEntry)}
}

func (d *memoryDriver) get(key string) ([]byte, bool) {
	d.mu.RLock()
	e, ok := d.entries[key]
	d.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		d.mu.Lock()
		delete(d.entries, key)
		d.mu.Unlock()
		return nil, false
	}
	return e.raw, true
}

func (d *memoryDriver) set(key string, value []byte, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}

	d.mu.Lock()
	d.entries[key] = memoryEntry{raw: value, expiresAt: exp}
	d.mu.Unlock()
	return nil
}

func (d *memoryDriver) del(key string) error {
	d.mu.Lock()
	delete(d.entries, key)
	d.mu.Unlock()
	return nil
}
