package cache

// lruStrategy keeps keys ordered from least to most recently used. Every
// read and every write moves the key to the tail; the head is evicted.
type lruStrategy[K comparable] struct {
	queue[K]
}

// NewLRUStrategy returns a least-recently-used Strategy.
func NewLRUStrategy[K comparable]() Strategy[K] {
	return &lruStrategy[K]{newQueue[K]()}
}

func (s *lruStrategy[K]) Update(key K) { s.order.moveToBack(key) }
func (s *lruStrategy[K]) Access(key K) { s.order.moveToBack(key) }

func (s *lruStrategy[K]) Victim() (K, bool) {
	return s.order.front()
}
