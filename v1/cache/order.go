package cache

import "container/list"

// order is a sequence of resident keys with O(1) membership, removal and
// move-to-back. Front is the head, back is the tail.
type order[K comparable] struct {
	ll    *list.List
	index map[K]*list.Element
}

func newOrder[K comparable]() *order[K] {
	return &order[K]{
		ll:    list.New(),
		index: make(map[K]*list.Element),
	}
}

func (o *order[K]) contains(key K) bool {
	_, ok := o.index[key]
	return ok
}

// pushBack appends key at the tail. A key already present is moved instead,
// so the sequence never holds duplicates.
func (o *order[K]) pushBack(key K) {
	if elem, ok := o.index[key]; ok {
		o.ll.MoveToBack(elem)
		return
	}
	o.index[key] = o.ll.PushBack(key)
}

func (o *order[K]) moveToBack(key K) {
	if elem, ok := o.index[key]; ok {
		o.ll.MoveToBack(elem)
	}
}

func (o *order[K]) remove(key K) bool {
	elem, ok := o.index[key]
	if !ok {
		return false
	}
	o.ll.Remove(elem)
	delete(o.index, key)
	return true
}

func (o *order[K]) front() (K, bool) {
	if elem := o.ll.Front(); elem != nil {
		return elem.Value.(K), true
	}
	var zero K
	return zero, false
}

func (o *order[K]) back() (K, bool) {
	if elem := o.ll.Back(); elem != nil {
		return elem.Value.(K), true
	}
	var zero K
	return zero, false
}

func (o *order[K]) keys() []K {
	keys := make([]K, 0, o.ll.Len())
	for elem := o.ll.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(K))
	}
	return keys
}

func (o *order[K]) len() int {
	return o.ll.Len()
}

func (o *order[K]) reset() {
	o.ll.Init()
	o.index = make(map[K]*list.Element)
}
