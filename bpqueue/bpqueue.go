// Package bpqueue is a bounded priority queue over small integer keys
// in [0, MaxKey]. It keeps one intrusive list per key (a bucket) plus a
// cached index of the extremum bucket, giving O(1) insert, O(1)
// decrease/increase-key, and amortized O(1) extraction: the
// revalidation scan only ever steps toward keys that earlier inserts
// paid for.
//
// One bucket past the configured range holds a resident sentinel node,
// so the scan terminates on a non-empty bucket without a bounds check.
// The cached index equals that terminal bucket exactly when the queue
// is empty.
//
// Items are arena nodes: callers Alloc a handle once, then Insert,
// relocate, and Pop it any number of times. Pop detaches a node but
// keeps its handle live, so the same node can be re-queued without
// reallocating — membership and storage have separate lifetimes.
//
// Ties within a bucket are FIFO: Insert appends at the tail, Pop takes
// the head.
package bpqueue

import (
	"errors"

	"github.com/codewheel/wheel/dllist"
	"github.com/codewheel/wheel/exclusive"
)

// Handle addresses one queued (or queueable) node.
type Handle = dllist.Handle

// Nil is the null handle.
const Nil = dllist.Nil

// Order selects which end of the key range Pop drains first.
type Order uint8

const (
	MaxFirst Order = iota
	MinFirst
)

var (
	ErrEmpty    = errors.New("bpqueue: empty queue")
	ErrKeyRange = errors.New("bpqueue: key outside configured range")
	ErrNotFound = errors.New("bpqueue: handle not queued")
	ErrMember   = errors.New("bpqueue: handle already queued")

	// Arena errors surface unchanged.
	ErrCapacity  = dllist.ErrCapacity
	ErrBadHandle = dllist.ErrBadHandle
)

// Config sizes and orients a queue.
type Config struct {
	// MaxKey is the inclusive upper key bound; keys range over
	// [0, MaxKey].
	MaxKey int

	// Order picks the extraction direction. Zero value is MaxFirst.
	Order Order

	// CapacityHint is the number of item slots to preallocate beyond
	// the queue's own bookkeeping nodes.
	CapacityHint int

	// FixedCapacity makes Alloc fail with ErrCapacity once
	// CapacityHint items are live, instead of growing the arena.
	FixedCapacity bool

	// StrictOwner binds the queue to the constructing goroutine and
	// panics on access from any other. Off by default.
	StrictOwner bool
}

// notMember marks a node that is allocated but in no bucket.
const notMember int32 = -1

type entry[T any] struct {
	key int32
	val T
}

// Queue is a bounded priority queue. Not safe for concurrent use.
type Queue[T any] struct {
	arena   *dllist.Arena[entry[T]]
	buckets []*dllist.List[entry[T]]
	cur     int // cached extremum bucket; == q.term iff empty
	term    int // terminal bucket holding the resident sentinel
	size    int
	maxKey  int
	order   Order
	guard   exclusive.Guard
}

// New builds a queue for keys in [0, cfg.MaxKey].
func New[T any](cfg Config) (*Queue[T], error) {
	// Keys are meant to be small bounded integers; one bucket exists
	// per key, so an oversized bound is a configuration error.
	if cfg.MaxKey < 0 || cfg.MaxKey > 1<<30 {
		return nil, ErrKeyRange
	}
	hint := cfg.CapacityHint
	if hint < 0 {
		hint = 0
	}
	nb := cfg.MaxKey + 2 // one bucket per key plus the terminal bucket
	arena := dllist.NewArena[entry[T]](hint+nb+1, cfg.FixedCapacity)

	q := &Queue[T]{
		arena:   arena,
		buckets: make([]*dllist.List[entry[T]], nb),
		maxKey:  cfg.MaxKey,
		order:   cfg.Order,
	}
	if cfg.Order == MaxFirst {
		q.term = 0
	} else {
		q.term = cfg.MaxKey + 1
	}
	q.cur = q.term

	for i := range q.buckets {
		l, err := dllist.NewList(arena, entry[T]{key: notMember})
		if err != nil {
			return nil, err
		}
		q.buckets[i] = l
	}
	// Resident sentinel node: keeps the terminal bucket non-empty so
	// rescan never needs a bounds check.
	h, err := arena.Alloc(entry[T]{key: notMember})
	if err != nil {
		return nil, err
	}
	if err := q.buckets[q.term].PushBack(h); err != nil {
		return nil, err
	}

	if cfg.StrictOwner {
		q.guard.Bind()
	}
	return q, nil
}

// Alloc places v in the queue's arena and returns its handle. The node
// starts unqueued; Insert gives it a key.
func (q *Queue[T]) Alloc(v T) (Handle, error) {
	q.guard.Check()
	return q.arena.Alloc(entry[T]{key: notMember, val: v})
}

// Release frees an unqueued node's slot. Remove or Pop it first.
func (q *Queue[T]) Release(h Handle) error {
	q.guard.Check()
	return q.arena.Free(h)
}

// Value returns a pointer to a node's payload.
func (q *Queue[T]) Value(h Handle) (*T, error) {
	q.guard.Check()
	e, err := q.arena.At(h)
	if err != nil {
		return nil, err
	}
	return &e.val, nil
}

// Key returns the key a node is currently queued under.
func (q *Queue[T]) Key(h Handle) (int, error) {
	q.guard.Check()
	e, err := q.arena.At(h)
	if err != nil {
		return 0, err
	}
	if e.key == notMember {
		return 0, ErrNotFound
	}
	return int(e.key), nil
}

// Insert queues an unqueued node under key, at the tail of its bucket.
func (q *Queue[T]) Insert(h Handle, key int) error {
	q.guard.Check()
	if key < 0 || key > q.maxKey {
		return ErrKeyRange
	}
	e, err := q.arena.At(h)
	if err != nil {
		return err
	}
	if e.key != notMember {
		return ErrMember
	}
	b := q.bucketOf(key)
	must(q.buckets[b].PushBack(h))
	e.key = int32(key)
	q.size++
	if q.moreExtreme(b) {
		q.cur = b
	}
	return nil
}

// Peep returns the extremum node and its key without removing it.
func (q *Queue[T]) Peep() (Handle, int, error) {
	q.guard.Check()
	if q.size == 0 {
		return Nil, 0, ErrEmpty
	}
	h, err := q.buckets[q.cur].Front()
	must(err)
	return h, q.keyOf(q.cur), nil
}

// Pop removes and returns the extremum node and its key. The handle
// stays live; Release it or Insert it again. Equal keys drain FIFO.
func (q *Queue[T]) Pop() (Handle, int, error) {
	q.guard.Check()
	if q.size == 0 {
		return Nil, 0, ErrEmpty
	}
	h, err := q.buckets[q.cur].PopFront()
	must(err)
	e, err := q.arena.At(h)
	must(err)
	key := int(e.key)
	e.key = notMember
	q.size--
	q.rescan()
	return h, key, nil
}

// ChangeKey relocates a queued node to a new key in O(1). On error the
// queue is unchanged.
func (q *Queue[T]) ChangeKey(h Handle, newKey int) error {
	q.guard.Check()
	if newKey < 0 || newKey > q.maxKey {
		return ErrKeyRange
	}
	e, err := q.arena.At(h)
	if err != nil {
		return err
	}
	if e.key == notMember {
		return ErrNotFound
	}
	if int(e.key) == newKey {
		return nil
	}
	old := q.bucketOf(int(e.key))
	b := q.bucketOf(newKey)
	must(q.buckets[old].MoveTo(q.buckets[b], h))
	e.key = int32(newKey)
	if q.moreExtreme(b) {
		q.cur = b
	} else if old == q.cur {
		q.rescan()
	}
	return nil
}

// IncreaseKey moves a queued node delta keys upward.
func (q *Queue[T]) IncreaseKey(h Handle, delta int) error {
	k, err := q.Key(h)
	if err != nil {
		return err
	}
	return q.ChangeKey(h, k+delta)
}

// DecreaseKey moves a queued node delta keys downward.
func (q *Queue[T]) DecreaseKey(h Handle, delta int) error {
	k, err := q.Key(h)
	if err != nil {
		return err
	}
	return q.ChangeKey(h, k-delta)
}

// ModifyKey shifts a queued node's key by a signed delta. Zero delta
// is a no-op beyond the membership check.
func (q *Queue[T]) ModifyKey(h Handle, delta int) error {
	k, err := q.Key(h)
	if err != nil {
		return err
	}
	if delta == 0 {
		return nil
	}
	return q.ChangeKey(h, k+delta)
}

// Remove dequeues a node without extracting it through Pop, for items
// invalidated externally. The handle stays live.
func (q *Queue[T]) Remove(h Handle) error {
	q.guard.Check()
	e, err := q.arena.At(h)
	if err != nil {
		return err
	}
	if e.key == notMember {
		return ErrNotFound
	}
	b := q.bucketOf(int(e.key))
	must(q.buckets[b].Remove(h))
	e.key = notMember
	q.size--
	if b == q.cur {
		q.rescan()
	}
	return nil
}

// Clear dequeues every node. Handles stay live for reuse.
func (q *Queue[T]) Clear() {
	q.guard.Check()
	for i := range q.buckets {
		if i == q.term {
			continue
		}
		l := q.buckets[i]
		for !l.IsEmpty() {
			h, err := l.PopFront()
			must(err)
			e, err := q.arena.At(h)
			must(err)
			e.key = notMember
		}
	}
	q.size = 0
	q.cur = q.term
}

func (q *Queue[T]) Len() int      { return q.size }
func (q *Queue[T]) IsEmpty() bool { return q.size == 0 }

// MaxKey reports the configured inclusive key bound.
func (q *Queue[T]) MaxKey() int { return q.maxKey }

// TransferOwnership rebinds a StrictOwner queue to the calling
// goroutine. No-op otherwise.
func (q *Queue[T]) TransferOwnership() {
	q.guard.Transfer()
}

// bucketOf maps a key to its bucket index. MaxFirst shifts keys up by
// one so bucket 0 is the terminal bucket; MinFirst keeps keys as-is
// and puts the terminal bucket above MaxKey.
func (q *Queue[T]) bucketOf(key int) int {
	if q.order == MaxFirst {
		return key + 1
	}
	return key
}

func (q *Queue[T]) keyOf(bucket int) int {
	if q.order == MaxFirst {
		return bucket - 1
	}
	return bucket
}

// moreExtreme reports whether bucket b beats the cached extremum. The
// terminal bucket sits at the far end in both orders, so this also
// covers the empty-queue case.
func (q *Queue[T]) moreExtreme(b int) bool {
	if q.order == MaxFirst {
		return b > q.cur
	}
	return b < q.cur
}

// rescan walks the cache toward the terminal bucket until it lands on
// a non-empty one. The resident sentinel bounds the walk. Each step
// retreats over a level some prior insert advanced the cache to, which
// is what makes extraction amortized O(1).
func (q *Queue[T]) rescan() {
	if q.order == MaxFirst {
		for q.buckets[q.cur].IsEmpty() {
			q.cur--
		}
	} else {
		for q.buckets[q.cur].IsEmpty() {
			q.cur++
		}
	}
	if (q.cur == q.term) != (q.size == 0) {
		panic("bpqueue: extremum cache disagrees with size")
	}
}

func must(err error) {
	if err != nil {
		panic("bpqueue: internal invariant violated: " + err.Error())
	}
}
