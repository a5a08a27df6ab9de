// Package dllist provides an arena of reusable node slots addressed by
// small integer handles, plus sentinel-headed circular doubly linked
// lists built over that arena. Links are arena indices rather than
// pointers, so a node can be unlinked from whatever list holds it in
// O(1) given only its handle, and a stale handle is a checkable error
// instead of a dangling pointer.
//
// Everything here is single-owner: no locking, no atomics. Sharing an
// arena or list across goroutines requires external mutual exclusion.
package dllist

import "errors"

// Handle addresses one slot in an Arena.
type Handle uint32

const (
	// Nil is the null handle. It is never returned by Alloc.
	Nil Handle = ^Handle(0)

	// freeMark tags the owner field of a slot sitting on the free list.
	freeMark Handle = ^Handle(1)
)

var (
	ErrCapacity    = errors.New("dllist: arena capacity exhausted")
	ErrBadHandle   = errors.New("dllist: handle not live")
	ErrStillLinked = errors.New("dllist: node still linked to a list")
	ErrNotInList   = errors.New("dllist: node not in this list")
	ErrEmptyList   = errors.New("dllist: empty list")
	ErrCrossArena  = errors.New("dllist: lists do not share an arena")
)

// slot holds one node: its payload, its sibling links, and the handle
// of the sentinel of the list it currently belongs to. owner is
// freeMark for a free slot, Nil for a live detached node, and the
// owning sentinel's handle for a linked node. Sentinel slots own
// themselves.
type slot[T any] struct {
	next  Handle
	prev  Handle
	owner Handle
	val   T
}

// Arena is a pool of slots with a free list threaded through next.
// A fixed arena fails Alloc with ErrCapacity once full; a growable
// arena reallocates instead and never returns ErrCapacity.
type Arena[T any] struct {
	slots    []slot[T]
	freeHead Handle
	live     int
	fixed    bool
}

// NewArena returns an arena with the given initial capacity. When
// fixed is true the capacity never grows.
func NewArena[T any](capacity int, fixed bool) *Arena[T] {
	if capacity < 0 {
		capacity = 0
	}
	a := &Arena[T]{
		slots:    make([]slot[T], capacity),
		freeHead: Nil,
		fixed:    fixed,
	}
	for i := capacity - 1; i >= 0; i-- {
		a.slots[i].owner = freeMark
		a.slots[i].next = a.freeHead
		a.freeHead = Handle(i)
	}
	return a
}

// Alloc places v in a fresh or recycled slot and returns its handle.
// The new node starts detached (member of no list).
func (a *Arena[T]) Alloc(v T) (Handle, error) {
	h := a.freeHead
	if h == Nil {
		if a.fixed {
			return Nil, ErrCapacity
		}
		if uint64(len(a.slots)) >= uint64(freeMark) {
			return Nil, ErrCapacity
		}
		a.slots = append(a.slots, slot[T]{})
		h = Handle(len(a.slots) - 1)
	} else {
		a.freeHead = a.slots[h].next
	}
	s := &a.slots[h]
	s.next, s.prev = h, h
	s.owner = Nil
	s.val = v
	a.live++
	return h, nil
}

// Free returns a detached slot to the free list. Freeing a handle that
// is not live fails with ErrBadHandle (this is the double-free check);
// freeing a node still linked into a list fails with ErrStillLinked,
// since unlinking behind the list's back would corrupt its count.
func (a *Arena[T]) Free(h Handle) error {
	s, err := a.ref(h)
	if err != nil {
		return err
	}
	if s.owner != Nil {
		return ErrStillLinked
	}
	var zero T
	s.val = zero
	s.owner = freeMark
	s.next = a.freeHead
	a.freeHead = h
	a.live--
	return nil
}

// At returns a pointer to the payload of a live slot. The pointer is
// invalidated by any growable-arena Alloc, so hold it briefly.
func (a *Arena[T]) At(h Handle) (*T, error) {
	s, err := a.ref(h)
	if err != nil {
		return nil, err
	}
	return &s.val, nil
}

// Len reports the number of live slots, sentinels included.
func (a *Arena[T]) Len() int { return a.live }

// Cap reports the current slot capacity.
func (a *Arena[T]) Cap() int { return len(a.slots) }

func (a *Arena[T]) ref(h Handle) (*slot[T], error) {
	if int(h) >= len(a.slots) || a.slots[h].owner == freeMark {
		return nil, ErrBadHandle
	}
	return &a.slots[h], nil
}
