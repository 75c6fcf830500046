package cache

import (
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithMaxItems sets the maximum number of entries the cache can hold.
// It is ignored by BasicPolicy, which is unbounded.
func WithMaxItems[K comparable, V any](n int) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.maxItems = n
	}
}

// WithDiscard installs the observer notified of every eviction.
func WithDiscard[K comparable, V any](fn DiscardFunc[K, V]) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.onDiscard = fn
	}
}

// WithLogger makes the cache emit debug records on admission and eviction.
func WithLogger[K comparable, V any](logger *slog.Logger) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.logger = logger
	}
}

// WithMetrics enables Prometheus metrics collection using the provided registerer.
// The collectors carry a constant policy label, so one registerer can serve
// one cache per policy; caches of the same policy on one registerer share
// their counters. Nothing is registered when construction fails.
func WithMetrics[K comparable, V any](reg prometheus.Registerer) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.registerer = reg
	}
}

func (c *Cache[K, V]) registerMetrics() {
	labels := prometheus.Labels{"policy": c.policy.String()}
	c.admitCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "evict_cache_admissions_total",
		Help:        "Total number of keys admitted into the cache",
		ConstLabels: labels,
	})
	c.updateCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "evict_cache_updates_total",
		Help:        "Total number of overwrites of resident keys",
		ConstLabels: labels,
	})
	c.hitCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "evict_cache_hits_total",
		Help:        "Total number of cache hits",
		ConstLabels: labels,
	})
	c.missCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "evict_cache_misses_total",
		Help:        "Total number of cache misses",
		ConstLabels: labels,
	})
	c.evictionCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "evict_cache_evictions_total",
		Help:        "Total number of cache evictions",
		ConstLabels: labels,
	})
	c.admitCounter = c.registerCounter(c.admitCounter)
	c.updateCounter = c.registerCounter(c.updateCounter)
	c.hitCounter = c.registerCounter(c.hitCounter)
	c.missCounter = c.registerCounter(c.missCounter)
	c.evictionCounter = c.registerCounter(c.evictionCounter)
}

// registerCounter registers counter, or returns the counter already
// registered under the same name and policy label so caches built one after
// another on one registerer share their series.
func (c *Cache[K, V]) registerCounter(counter prometheus.Counter) prometheus.Counter {
	if err := c.registerer.Register(counter); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
		panic(err)
	}
	return counter
}
