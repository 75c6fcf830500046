package cache

import "sync"

// Synced serializes access to a single Cache with a mutex. Get takes the
// exclusive lock too, since reads reorder recency-aware strategies.
type Synced[K comparable, V any] struct {
	mu sync.Mutex
	c  *Cache[K, V]
}

// NewSynced wraps c. c must not be used directly afterwards.
func NewSynced[K comparable, V any](c *Cache[K, V]) *Synced[K, V] {
	return &Synced[K, V]{c: c}
}

// Put implements Cache.Put under the lock.
func (s *Synced[K, V]) Put(key K, item V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Put(key, item)
}

// Get implements Cache.Get under the lock.
func (s *Synced[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Get(key)
}

// Snapshot implements Cache.Snapshot under the lock.
func (s *Synced[K, V]) Snapshot() map[K]V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Snapshot()
}

// Keys implements Cache.Keys under the lock.
func (s *Synced[K, V]) Keys() []K {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Keys()
}

// Len implements Cache.Len under the lock.
func (s *Synced[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Len()
}

// Metrics implements Cache.Metrics under the lock.
func (s *Synced[K, V]) Metrics() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Metrics()
}
