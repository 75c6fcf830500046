// Package cache provides a bounded in-memory key/value store with
// interchangeable eviction policies: FIFO, LIFO, LRU and MRU, plus an
// unbounded Basic policy. All policies share the same Put/Get contract and
// differ only in which key a Strategy selects as the victim when a new key
// has to be admitted into a full cache.
//
// Every eviction is reported to an optional DiscardFunc before the victim is
// removed. The store runs synchronously and holds no locks or goroutines; use
// Synced to share an instance.
package cache
