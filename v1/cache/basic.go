package cache

// basicStrategy never selects a victim. It backs the unbounded BasicPolicy
// and only remembers admission order so Keys stays deterministic.
type basicStrategy[K comparable] struct {
	queue[K]
}

// NewBasicStrategy returns a Strategy that never evicts.
func NewBasicStrategy[K comparable]() Strategy[K] {
	return &basicStrategy[K]{newQueue[K]()}
}

func (s *basicStrategy[K]) Update(K) {}
func (s *basicStrategy[K]) Access(K) {}

func (s *basicStrategy[K]) Victim() (K, bool) {
	var zero K
	return zero, false
}
