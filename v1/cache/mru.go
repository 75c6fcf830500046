package cache

// mruStrategy tracks recency exactly like lruStrategy but evicts the tail,
// that is the key touched last before the admission that triggered eviction.
type mruStrategy[K comparable] struct {
	queue[K]
}

// NewMRUStrategy returns a most-recently-used Strategy.
func NewMRUStrategy[K comparable]() Strategy[K] {
	return &mruStrategy[K]{newQueue[K]()}
}

func (s *mruStrategy[K]) Update(key K) { s.order.moveToBack(key) }
func (s *mruStrategy[K]) Access(key K) { s.order.moveToBack(key) }

func (s *mruStrategy[K]) Victim() (K, bool) {
	return s.order.back()
}
