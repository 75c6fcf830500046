package cache

import (
	"fmt"
	"io"
	"log/slog"
)

// DiscardFunc is notified of an evicted entry before it leaves the cache.
type DiscardFunc[K comparable, V any] func(key K, value V)

// PrintDiscard writes a "DISCARD: <key>" line to w for every eviction.
func PrintDiscard[K comparable, V any](w io.Writer) DiscardFunc[K, V] {
	return func(key K, _ V) {
		fmt.Fprintf(w, "DISCARD: %v\n", key)
	}
}

// LogDiscard logs every eviction at info level, tagged with the policy of
// the cache it is installed on.
func LogDiscard[K comparable, V any](logger *slog.Logger, policy Policy) DiscardFunc[K, V] {
	return func(key K, _ V) {
		logger.Info("cache discard", "policy", policy.String(), "key", key)
	}
}

// MultiDiscard fans a notice out to every non-nil observer, in order.
func MultiDiscard[K comparable, V any](fns ...DiscardFunc[K, V]) DiscardFunc[K, V] {
	return func(key K, value V) {
		for _, fn := range fns {
			if fn != nil {
				fn(key, value)
			}
		}
	}
}
