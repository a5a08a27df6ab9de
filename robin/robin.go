// Package robin is a round-robin cycle over parts 0..n-1, stored as a
// flat successor table rather than linked nodes. Its one job: visit
// every part except a chosen one, in cycle order, with no allocation
// per traversal.
package robin

// Robin holds the successor of each part in the cycle.
type Robin struct {
	next []uint32
}

// New builds a cycle of n parts where part i is followed by i+1 and
// the last part wraps to 0.
func New(n int) *Robin {
	next := make([]uint32, n)
	for i := range next {
		next[i] = uint32(i + 1)
	}
	if n > 0 {
		next[n-1] = 0
	}
	return &Robin{next: next}
}

// Len reports the number of parts in the cycle.
func (r *Robin) Len() int { return len(r.next) }

// Exclude returns an iterator over the n-1 parts other than from,
// starting at from's successor.
func (r *Robin) Exclude(from uint32) Iterator {
	return Iterator{next: r.next, cur: from, stop: from}
}

// Iterator walks the cycle until it returns to its starting part.
type Iterator struct {
	next []uint32
	cur  uint32
	stop uint32
}

// Next returns the next part, or false once the walk wraps back to the
// excluded part.
func (it *Iterator) Next() (uint32, bool) {
	nx := it.next[it.cur]
	if nx == it.stop {
		return 0, false
	}
	it.cur = nx
	return nx, true
}
