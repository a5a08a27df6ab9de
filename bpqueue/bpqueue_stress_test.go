// bpqueue_stress_test.go — randomized workloads that cross-check the
// queue against brute-force expectations: drained key order, multiset
// preservation, and size accounting under heavy ChangeKey churn.

package bpqueue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStressInsertChangeDrainMax(t *testing.T) {
	const (
		n       = 5000
		maxKey  = 63
		changes = 2000
		seed    = 1
	)
	rng := rand.New(rand.NewSource(seed))
	q := newOrFatal[int](t, Config{MaxKey: maxKey})

	handles := make([]Handle, n)
	for i := 0; i < n; i++ {
		handles[i] = enqueue(t, q, i, rng.Intn(maxKey+1))
	}
	for i := 0; i < changes; i++ {
		h := handles[rng.Intn(n)]
		require.NoError(t, q.ChangeKey(h, rng.Intn(maxKey+1)))
	}
	require.Equal(t, n, q.Len())

	vals, keys := drain(t, q)
	require.Len(t, vals, n)
	assert.True(t, sort.SliceIsSorted(keys, func(i, j int) bool {
		return keys[i] > keys[j]
	}), "max-first drain must be non-increasing")

	// Every inserted item comes out exactly once.
	seen := make(map[int]int, n)
	for _, v := range vals {
		seen[v]++
	}
	require.Len(t, seen, n)
	for v, c := range seen {
		require.Equal(t, 1, c, "item %d drained %d times", v, c)
	}
}

func TestStressInterleavedOpsMin(t *testing.T) {
	const (
		maxKey = 31
		ops    = 20000
		seed   = 2
	)
	rng := rand.New(rand.NewSource(seed))
	q := newOrFatal[int](t, Config{MaxKey: maxKey, Order: MinFirst})

	var members []Handle
	inserted, removed, popped := 0, 0, 0
	for i := 0; i < ops; i++ {
		switch op := rng.Intn(4); {
		case op == 0 || len(members) == 0:
			h := enqueue(t, q, i, rng.Intn(maxKey+1))
			members = append(members, h)
			inserted++
		case op == 1:
			j := rng.Intn(len(members))
			require.NoError(t, q.ChangeKey(members[j], rng.Intn(maxKey+1)))
		case op == 2:
			j := rng.Intn(len(members))
			require.NoError(t, q.Remove(members[j]))
			require.NoError(t, q.Release(members[j]))
			members[j] = members[len(members)-1]
			members = members[:len(members)-1]
			removed++
		default:
			h, k, err := q.Pop()
			require.NoError(t, err)
			_, kerr := q.Key(h)
			assert.ErrorIs(t, kerr, ErrNotFound)
			for j := range members {
				if members[j] == h {
					members[j] = members[len(members)-1]
					members = members[:len(members)-1]
					break
				}
			}
			require.GreaterOrEqual(t, k, 0)
			require.LessOrEqual(t, k, maxKey)
			require.NoError(t, q.Release(h))
			popped++
		}
		require.Equal(t, inserted-removed-popped, q.Len())
	}

	_, keys := drain(t, q)
	assert.True(t, sort.IntsAreSorted(keys), "min-first drain must be non-decreasing")
}

func TestStressPeepMatchesPop(t *testing.T) {
	const (
		n      = 2000
		maxKey = 15
		seed   = 3
	)
	rng := rand.New(rand.NewSource(seed))
	q := newOrFatal[int](t, Config{MaxKey: maxKey})
	for i := 0; i < n; i++ {
		enqueue(t, q, i, rng.Intn(maxKey+1))
	}

	for !q.IsEmpty() {
		ph, pk, err := q.Peep()
		require.NoError(t, err)
		h, k, err := q.Pop()
		require.NoError(t, err)
		require.Equal(t, ph, h)
		require.Equal(t, pk, k)
	}
}
