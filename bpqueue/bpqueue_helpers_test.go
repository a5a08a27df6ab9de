// bpqueue_helpers_test.go — shared helpers for the bpqueue suites.
// Centralizes alloc/insert boilerplate so the individual tests stay
// about ordering and error behavior.

package bpqueue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newOrFatal[T any](t *testing.T, cfg Config) *Queue[T] {
	t.Helper()
	q, err := New[T](cfg)
	require.NoError(t, err, "New failed")
	return q
}

// enqueue allocates v and inserts it under key.
func enqueue[T any](t *testing.T, q *Queue[T], v T, key int) Handle {
	t.Helper()
	h, err := q.Alloc(v)
	require.NoError(t, err, "Alloc failed")
	require.NoError(t, q.Insert(h, key), "Insert failed")
	return h
}

// drain pops everything, returning values and keys in pop order.
func drain[T any](t *testing.T, q *Queue[T]) ([]T, []int) {
	t.Helper()
	var vals []T
	var keys []int
	for !q.IsEmpty() {
		h, k, err := q.Pop()
		require.NoError(t, err, "Pop failed")
		v, err := q.Value(h)
		require.NoError(t, err, "Value failed")
		vals = append(vals, *v)
		keys = append(keys, k)
	}
	return vals, keys
}
