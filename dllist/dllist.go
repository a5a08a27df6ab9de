package dllist

// List is a circular doubly linked list of arena nodes, headed by a
// sentinel slot allocated from the same arena. The sentinel makes the
// link structure uniform: an empty list is the sentinel linked to
// itself, and every unlink is the same two splices regardless of
// position. Following next from the sentinel returns to it after
// exactly Len steps.
type List[T any] struct {
	a    *Arena[T]
	head Handle
	n    int
}

// NewList allocates a sentinel slot holding sentinelVal and returns an
// empty list over the arena. Fails only if the arena is exhausted.
func NewList[T any](a *Arena[T], sentinelVal T) (*List[T], error) {
	h, err := a.Alloc(sentinelVal)
	if err != nil {
		return nil, err
	}
	a.slots[h].owner = h
	return &List[T]{a: a, head: h}, nil
}

// PushBack links a live, detached node at the tail.
func (l *List[T]) PushBack(h Handle) error {
	s, err := l.a.ref(h)
	if err != nil {
		return err
	}
	if s.owner != Nil {
		return ErrStillLinked
	}
	sent := &l.a.slots[l.head]
	tail := sent.prev
	s.prev, s.next = tail, l.head
	l.a.slots[tail].next = h
	sent.prev = h
	s.owner = l.head
	l.n++
	return nil
}

// PushFront links a live, detached node at the head.
func (l *List[T]) PushFront(h Handle) error {
	s, err := l.a.ref(h)
	if err != nil {
		return err
	}
	if s.owner != Nil {
		return ErrStillLinked
	}
	sent := &l.a.slots[l.head]
	first := sent.next
	s.prev, s.next = l.head, first
	l.a.slots[first].prev = h
	sent.next = h
	s.owner = l.head
	l.n++
	return nil
}

// PopFront unlinks and returns the head node.
func (l *List[T]) PopFront() (Handle, error) {
	if l.n == 0 {
		return Nil, ErrEmptyList
	}
	h := l.a.slots[l.head].next
	l.unlink(h)
	return h, nil
}

// PopBack unlinks and returns the tail node.
func (l *List[T]) PopBack() (Handle, error) {
	if l.n == 0 {
		return Nil, ErrEmptyList
	}
	h := l.a.slots[l.head].prev
	l.unlink(h)
	return h, nil
}

// Remove unlinks a node from this list in O(1) using its own stored
// links; no search happens. Fails with ErrNotInList if the node is not
// currently a member of this list.
func (l *List[T]) Remove(h Handle) error {
	s, err := l.a.ref(h)
	if err != nil {
		return err
	}
	if s.owner != l.head {
		return ErrNotInList
	}
	l.unlink(h)
	return nil
}

// MoveTo unlinks a node from this list and appends it to dst as one
// step, so the node is never observable in a half-moved state. Both
// lists must share an arena.
func (l *List[T]) MoveTo(dst *List[T], h Handle) error {
	if dst.a != l.a {
		return ErrCrossArena
	}
	s, err := l.a.ref(h)
	if err != nil {
		return err
	}
	if s.owner != l.head {
		return ErrNotInList
	}
	l.unlink(h)
	sent := &l.a.slots[dst.head]
	tail := sent.prev
	s.prev, s.next = tail, dst.head
	l.a.slots[tail].next = h
	sent.prev = h
	s.owner = dst.head
	dst.n++
	return nil
}

// Front returns the head node without unlinking it.
func (l *List[T]) Front() (Handle, error) {
	if l.n == 0 {
		return Nil, ErrEmptyList
	}
	return l.a.slots[l.head].next, nil
}

// Back returns the tail node without unlinking it.
func (l *List[T]) Back() (Handle, error) {
	if l.n == 0 {
		return Nil, ErrEmptyList
	}
	return l.a.slots[l.head].prev, nil
}

// Clear detaches every node. The nodes stay live in the arena.
func (l *List[T]) Clear() {
	for l.n > 0 {
		l.unlink(l.a.slots[l.head].next)
	}
}

func (l *List[T]) Len() int      { return l.n }
func (l *List[T]) IsEmpty() bool { return l.n == 0 }

func (l *List[T]) unlink(h Handle) {
	s := &l.a.slots[h]
	p, nx := s.prev, s.next
	l.a.slots[p].next = nx
	l.a.slots[nx].prev = p
	s.next, s.prev = h, h
	s.owner = Nil
	l.n--
}

// Iterator walks a list front to back. Re-calling Iter restarts the
// walk. Mutating the list while an iterator is in flight is undefined,
// per the single-owner discipline.
type Iterator[T any] struct {
	l   *List[T]
	cur Handle
}

// Iter returns an iterator positioned before the first node.
func (l *List[T]) Iter() Iterator[T] {
	return Iterator[T]{l: l, cur: l.head}
}

// Next advances to the next node, reporting false once the walk wraps
// back to the sentinel.
func (it *Iterator[T]) Next() bool {
	nx := it.l.a.slots[it.cur].next
	if nx == it.l.head {
		return false
	}
	it.cur = nx
	return true
}

// Handle returns the node the iterator is positioned on.
func (it *Iterator[T]) Handle() Handle { return it.cur }
