package cache

// fifoStrategy evicts the key that has been resident the longest. Neither
// reads nor overwrites change the eviction order.
type fifoStrategy[K comparable] struct {
	queue[K]
}

// NewFIFOStrategy returns a first-in-first-out Strategy.
func NewFIFOStrategy[K comparable]() Strategy[K] {
	return &fifoStrategy[K]{newQueue[K]()}
}

func (s *fifoStrategy[K]) Update(K) {}
func (s *fifoStrategy[K]) Access(K) {}

func (s *fifoStrategy[K]) Victim() (K, bool) {
	return s.order.front()
}
