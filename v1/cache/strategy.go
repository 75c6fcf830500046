package cache

// Strategy decides which resident key is sacrificed when a bounded cache is
// full. It only tracks keys; values live in the cache.
//
// The cache calls the hooks as follows:
//   - Admit when a previously absent key is inserted.
//   - Update when a resident key is overwritten by Put.
//   - Access when a resident key is read by Get.
//   - Victim when a new key must be admitted at capacity. Victim must not
//     change the strategy state; the cache calls Remove for the victim after
//     notifying the discard observer.
//   - Reset when the cache is cleared.
//
// Keys returns the tracked keys head first. The set of tracked keys must
// always equal the set of keys resident in the cache.
type Strategy[K comparable] interface {
	Admit(key K)
	Update(key K)
	Access(key K)
	Victim() (K, bool)
	Remove(key K)
	Keys() []K
	Len() int
	Reset()
}

// queue is the bookkeeping shared by the built-in strategies. Admission
// always appends at the tail; the strategies differ in what moves on Update
// and Access and in which end the victim is taken from.
type queue[K comparable] struct {
	order *order[K]
}

func newQueue[K comparable]() queue[K] {
	return queue[K]{order: newOrder[K]()}
}

func (q queue[K]) Admit(key K)  { q.order.pushBack(key) }
func (q queue[K]) Remove(key K) { q.order.remove(key) }
func (q queue[K]) Keys() []K    { return q.order.keys() }
func (q queue[K]) Len() int     { return q.order.len() }
func (q queue[K]) Reset()       { q.order.reset() }
