package cache

// node is an entry in the doubly-linked recency list. The node stores
// its key for O(1) map deletion on eviction.
type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]
}

// lruList orders nodes by recency. Head is most recently used, tail is
// least. Not thread-safe; Cache handles synchronization.
type lruList[K comparable, V any] struct {
	head *node[K, V]
	tail *node[K, V]
}

// pushFront adds a new node at the front and returns it.
func (l *lruList[K, V]) pushFront(key K, value V) *node[K, V] {
	n := &node[K, V]{key: key, value: value}
	if l.head == nil {
		l.head = n
		l.tail = n
		return n
	}
	n.next = l.head
	l.head.prev = n
	l.head = n
	return n
}

// moveToFront marks an existing node most recently used.
func (l *lruList[K, V]) moveToFront(n *node[K, V]) {
	if n == nil || n == l.head {
		return
	}
	l.unlink(n)
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
}

// remove unlinks a node from the list.
func (l *lruList[K, V]) remove(n *node[K, V]) {
	if n == nil {
		return
	}
	l.unlink(n)
}

// removeOldest evicts the least recently used node and returns its
// key. Returns false on an empty list.
func (l *lruList[K, V]) removeOldest() (K, bool) {
	if l.tail == nil {
		var zero K
		return zero, false
	}
	n := l.tail
	l.unlink(n)
	return n.key, true
}

func (l *lruList[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}
