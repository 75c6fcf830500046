package cache

import (
	"fmt"
	"strings"

	evicterrors "github.com/mirkobrombin/go-evict/v1/errors"
)

// Policy identifies the eviction policy used by cache.New.
type Policy int

const (
	// BasicPolicy never evicts and has no capacity limit.
	BasicPolicy Policy = iota
	// FIFOPolicy evicts the oldest admitted key.
	FIFOPolicy
	// LIFOPolicy evicts the most recently written key.
	LIFOPolicy
	// LRUPolicy evicts the least recently used key.
	LRUPolicy
	// MRUPolicy evicts the most recently used key.
	MRUPolicy
	// CustomPolicy marks a cache built around a caller supplied Strategy.
	CustomPolicy
)

var policyNames = map[Policy]string{
	BasicPolicy:  "basic",
	FIFOPolicy:   "fifo",
	LIFOPolicy:   "lifo",
	LRUPolicy:    "lru",
	MRUPolicy:    "mru",
	CustomPolicy: "custom",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Policies lists the built-in policies in declaration order.
func Policies() []Policy {
	return []Policy{BasicPolicy, FIFOPolicy, LIFOPolicy, LRUPolicy, MRUPolicy}
}

// ParsePolicy maps a case-insensitive name such as "lru" to its Policy.
func ParsePolicy(name string) (Policy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, p := range Policies() {
		if policyNames[p] == n {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", evicterrors.ErrUnknownPolicy, name)
}

func newStrategy[K comparable](p Policy) (Strategy[K], error) {
	switch p {
	case BasicPolicy:
		return NewBasicStrategy[K](), nil
	case FIFOPolicy:
		return NewFIFOStrategy[K](), nil
	case LIFOPolicy:
		return NewLIFOStrategy[K](), nil
	case LRUPolicy:
		return NewLRUStrategy[K](), nil
	case MRUPolicy:
		return NewMRUStrategy[K](), nil
	default:
		return nil, fmt.Errorf("%w: %s", evicterrors.ErrUnknownPolicy, p)
	}
}

// New returns an empty Cache using the selected policy.
//
// Bounded policies hold DefaultMaxItems entries unless WithMaxItems says
// otherwise; a non-positive capacity is rejected with ErrInvalidCapacity.
func New[K comparable, V any](p Policy, opts ...Option[K, V]) (*Cache[K, V], error) {
	s, err := newStrategy[K](p)
	if err != nil {
		return nil, err
	}
	return build(p, s, opts)
}

// NewWithStrategy returns an empty bounded Cache driven by s. s must not
// track any key yet.
func NewWithStrategy[K comparable, V any](s Strategy[K], opts ...Option[K, V]) (*Cache[K, V], error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil strategy", evicterrors.ErrUnknownPolicy)
	}
	s.Reset()
	return build(CustomPolicy, s, opts)
}

func build[K comparable, V any](p Policy, s Strategy[K], opts []Option[K, V]) (*Cache[K, V], error) {
	c := &Cache[K, V]{
		items:    make(map[K]V),
		strategy: s,
		policy:   p,
		maxItems: DefaultMaxItems,
	}
	for _, opt := range opts {
		opt(c)
	}
	if p == BasicPolicy {
		c.maxItems = 0
	} else if c.maxItems <= 0 {
		return nil, fmt.Errorf("%w: %d", evicterrors.ErrInvalidCapacity, c.maxItems)
	}
	if c.registerer != nil {
		c.registerMetrics()
	}
	return c, nil
}

// MustNew is like New but panics on invalid configuration.
func MustNew[K comparable, V any](p Policy, opts ...Option[K, V]) *Cache[K, V] {
	c, err := New[K, V](p, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// NewBasic returns an unbounded cache that never evicts.
func NewBasic[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	return MustNew[K, V](BasicPolicy, opts...)
}

// NewFIFO returns a first-in-first-out cache.
func NewFIFO[K comparable, V any](opts ...Option[K, V]) (*Cache[K, V], error) {
	return New[K, V](FIFOPolicy, opts...)
}

// NewLIFO returns a last-in-first-out cache.
func NewLIFO[K comparable, V any](opts ...Option[K, V]) (*Cache[K, V], error) {
	return New[K, V](LIFOPolicy, opts...)
}

// NewLRU returns a least-recently-used cache.
func NewLRU[K comparable, V any](opts ...Option[K, V]) (*Cache[K, V], error) {
	return New[K, V](LRUPolicy, opts...)
}

// NewMRU returns a most-recently-used cache.
func NewMRU[K comparable, V any](opts ...Option[K, V]) (*Cache[K, V], error) {
	return New[K, V](MRUPolicy, opts...)
}
