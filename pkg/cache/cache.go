// Package cache provides a small key/value cache backed by Redis, with an
// in-process fallback so the application (and its tests) keep working when
// Redis is unreachable. Values are JSON-encoded.
package cache

import (
	"time"
)

// driver is the minimal contract both backends implement.
type driver interface {
	get(key string) ([]byte, bool)
	set(key string, value []byte, ttl time.Duration) error
	del(key string) error
}

var active driver = newMemoryDriver()

// Connect initialises the Redis backend. On failure the in-process memory
// driver stays active and the error is returned for the caller to log.
func Connect() error {
	d, err := newRedisDriver()
	if err != nil {
		return err
	}
	active = d
	return nil
}

// UseMemory forces the in-process driver. Intended for tests.
func UseMemory() {
	active = newMemoryDriver()
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(key string, dest interface{}) bool {
	raw, ok := active.get(key)
	if !ok {
		return false
	}
	return unmarshal(raw, dest)
}

// Has reports whether key is present without decoding it.
func Has(key string) bool {
	_, ok := active.get(key)
	return ok
}

// Set stores value under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	raw, err := marshal(value)
	if err != nil {
		return err
	}
	return active.set(key, raw, ttl)
}

// Del removes key.
func Del(key string) error {
	return active.del(key)
}
