package cache

import (
	"log/slog"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultMaxItems is the capacity used when WithMaxItems is not given.
const DefaultMaxItems = 4

// Cache is a bounded in-memory key/value store. Which entry is discarded when
// the store is full is decided by its Strategy.
//
// A Cache is not safe for concurrent use. Wrap it with NewSynced when it has
// to be shared between goroutines.
type Cache[K comparable, V any] struct {
	items     map[K]V
	strategy  Strategy[K]
	policy    Policy
	maxItems  int
	onDiscard DiscardFunc[K, V]
	logger    *slog.Logger

	hits      uint64
	misses    uint64
	evictions uint64

	registerer      prometheus.Registerer
	admitCounter    prometheus.Counter
	updateCounter   prometheus.Counter
	hitCounter      prometheus.Counter
	missCounter     prometheus.Counter
	evictionCounter prometheus.Counter
}

// Put stores item under key.
//
// Put does nothing when key or item is nil. Overwriting a resident key never
// evicts. Admitting a new key into a full cache first discards the victim
// chosen by the strategy and reports it to the discard observer; when the
// strategy yields no resident victim the new key is not admitted.
func (c *Cache[K, V]) Put(key K, item V) {
	if isNil(key) || isNil(item) {
		return
	}
	if _, ok := c.items[key]; ok {
		c.items[key] = item
		c.strategy.Update(key)
		if c.updateCounter != nil {
			c.updateCounter.Inc()
		}
		return
	}
	if c.maxItems > 0 && len(c.items) >= c.maxItems && !c.evict() {
		return
	}
	c.items[key] = item
	c.strategy.Admit(key)
	if c.admitCounter != nil {
		c.admitCounter.Inc()
	}
	if c.logger != nil {
		c.logger.Debug("cache admit", "policy", c.policy.String(), "key", key)
	}
}

// Get returns the value stored under key. The boolean reports whether the key
// was found; a nil key is never found.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	if isNil(key) {
		return zero, false
	}
	v, ok := c.items[key]
	if !ok {
		c.misses++
		if c.missCounter != nil {
			c.missCounter.Inc()
		}
		return zero, false
	}
	c.strategy.Access(key)
	c.hits++
	if c.hitCounter != nil {
		c.hitCounter.Inc()
	}
	return v, true
}

// evict discards one entry and reports whether room was made. The observer
// sees the victim while it is still resident. A victim the store does not
// hold is dropped from the strategy without a notice.
func (c *Cache[K, V]) evict() bool {
	victim, ok := c.strategy.Victim()
	if !ok {
		return false
	}
	value, ok := c.items[victim]
	if !ok {
		c.strategy.Remove(victim)
		return false
	}
	if c.onDiscard != nil {
		c.onDiscard(victim, value)
	}
	if c.logger != nil {
		c.logger.Debug("cache evict", "policy", c.policy.String(), "key", victim)
	}
	c.strategy.Remove(victim)
	delete(c.items, victim)
	c.evictions++
	if c.evictionCounter != nil {
		c.evictionCounter.Inc()
	}
	return true
}

// Snapshot returns a copy of the current contents.
func (c *Cache[K, V]) Snapshot() map[K]V {
	out := make(map[K]V, len(c.items))
	for k, v := range c.items {
		out[k] = v
	}
	return out
}

// Keys returns the resident keys in eviction order, head first.
func (c *Cache[K, V]) Keys() []K {
	return c.strategy.Keys()
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	return len(c.items)
}

// MaxItems returns the capacity. Zero means unbounded.
func (c *Cache[K, V]) MaxItems() int {
	return c.maxItems
}

// Policy returns the eviction policy the cache was built with.
func (c *Cache[K, V]) Policy() Policy {
	return c.policy
}

// Clear drops every entry without emitting discard notices.
func (c *Cache[K, V]) Clear() {
	c.items = make(map[K]V)
	c.strategy.Reset()
}

// Stats reports basic metrics about cache usage.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
}

// Metrics returns current metrics for the cache.
func (c *Cache[K, V]) Metrics() Stats {
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.items),
	}
}

// isNil reports whether v is absent: a nil interface or a nil pointer, map,
// slice, channel or func. Zero values such as 0 or "" are not absent.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
