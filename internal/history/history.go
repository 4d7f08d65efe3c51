// Package history keeps a duplicate-free, recency-ordered record of viewed items.
package history

// node is an entry of the intrusive doubly linked list.
type node[V any] struct {
	prev  *node[V]
	next  *node[V]
	value V
	id    int
}

// History remembers the order in which items were most recently viewed.
// Each id appears at most once; recording an id again moves it to the
// most-recent end. Record and Remove are O(1), Snapshot is O(n).
//
// History is not safe for concurrent use.
type History[V any] struct {
	index map[int]*node[V]
	head  *node[V] // least recent
	tail  *node[V] // most recent
}

// New creates an empty History.
func New[V any]() *History[V] {
	return &History[V]{index: make(map[int]*node[V])}
}

// Record marks id as the most recently viewed entry, storing v for it.
func (h *History[V]) Record(id int, v V) {
	if n, ok := h.index[id]; ok {
		h.unlink(n)
	}
	h.index[id] = h.linkLast(id, v)
}

// Remove drops id from the history. Unknown ids are ignored.
func (h *History[V]) Remove(id int) {
	n, ok := h.index[id]
	if !ok {
		return
	}
	h.unlink(n)
	delete(h.index, id)
}

// Contains reports whether id is in the history.
func (h *History[V]) Contains(id int) bool {
	_, ok := h.index[id]
	return ok
}

// Len returns the number of entries.
func (h *History[V]) Len() int {
	return len(h.index)
}

// Snapshot returns the values from least to most recent.
// The returned slice is owned by the caller.
func (h *History[V]) Snapshot() []V {
	values := make([]V, 0, len(h.index))
	for n := h.head; n != nil; n = n.next {
		values = append(values, n.value)
	}
	return values
}

// Clear removes all entries.
func (h *History[V]) Clear() {
	clear(h.index)
	h.head, h.tail = nil, nil
}

func (h *History[V]) linkLast(id int, v V) *node[V] {
	n := &node[V]{id: id, value: v, prev: h.tail}
	if h.tail == nil {
		h.head = n
	} else {
		h.tail.next = n
	}
	h.tail = n
	return n
}

func (h *History[V]) unlink(n *node[V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		h.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		h.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
