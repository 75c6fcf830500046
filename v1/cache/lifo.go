package cache

// lifoStrategy evicts the most recently written key. Overwriting a resident
// key makes it the most recent one again; reads leave the order untouched.
type lifoStrategy[K comparable] struct {
	queue[K]
}

// NewLIFOStrategy returns a last-in-first-out Strategy.
func NewLIFOStrategy[K comparable]() Strategy[K] {
	return &lifoStrategy[K]{newQueue[K]()}
}

func (s *lifoStrategy[K]) Update(key K) { s.order.moveToBack(key) }
func (s *lifoStrategy[K]) Access(K)     {}

func (s *lifoStrategy[K]) Victim() (K, bool) {
	return s.order.back()
}
