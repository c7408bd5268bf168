package list_test

import (
	"slices"
	"testing"

	"deedles.dev/ringq/internal/list"
	"github.com/stretchr/testify/require"
)

type nodes map[list.ID]*list.Node

func (ns nodes) Node(id list.ID) *list.Node {
	return ns[id]
}

func newRing(t *testing.T, n int) (*list.Ring, nodes) {
	t.Helper()

	ns := make(nodes)
	var r list.Ring
	r.Init(ns)
	for i := 1; i <= n; i++ {
		id := list.ID(i)
		ns[id] = new(list.Node)
		r.PushBack(id)
	}
	require.NoError(t, r.Check())
	return &r, ns
}

func ids(r *list.Ring) []list.ID {
	return slices.Collect(r.All())
}

func seq(vals ...int) (s []list.ID) {
	for _, v := range vals {
		s = append(s, list.ID(v))
	}
	return s
}

func TestRingEmpty(t *testing.T) {
	r, _ := newRing(t, 0)
	require.True(t, r.Empty())
	require.False(t, r.Singular())
	require.Equal(t, list.Head, r.Front())
	require.Equal(t, list.Head, r.Back())
	require.Zero(t, r.Len())
	require.Empty(t, ids(r))
}

func TestRingPush(t *testing.T) {
	ns := make(nodes)
	var r list.Ring
	r.Init(ns)

	for i := 1; i <= 3; i++ {
		ns[list.ID(i)] = new(list.Node)
	}
	r.PushBack(1)
	require.True(t, r.Singular())
	r.PushFront(2)
	r.PushBack(3)
	require.NoError(t, r.Check())

	require.Equal(t, seq(2, 1, 3), ids(&r))
	require.Equal(t, seq(3, 1, 2), slices.Collect(r.Backward()))
	require.Equal(t, list.ID(2), r.Front())
	require.Equal(t, list.ID(3), r.Back())
	require.Equal(t, 3, r.Len())
}

func TestRingInsertUnlink(t *testing.T) {
	r, ns := newRing(t, 3)

	ns[4] = new(list.Node)
	r.InsertAfter(1, 4)
	require.Equal(t, seq(1, 4, 2, 3), ids(r))

	ns[5] = new(list.Node)
	r.InsertBefore(3, 5)
	require.Equal(t, seq(1, 4, 2, 5, 3), ids(r))
	require.NoError(t, r.Check())

	r.Unlink(2)
	require.Equal(t, seq(1, 4, 5, 3), ids(r))
	require.False(t, ns[2].Linked(2))
	require.NoError(t, r.Check())

	r.MoveToBack(1)
	require.Equal(t, seq(4, 5, 3, 1), ids(r))
	require.NoError(t, r.Check())
}

func TestRingUnlinkDuringIteration(t *testing.T) {
	r, _ := newRing(t, 6)
	for id := range r.All() {
		if id%2 == 0 {
			r.Unlink(id)
		}
	}
	require.Equal(t, seq(1, 3, 5), ids(r))
	require.NoError(t, r.Check())
}

func TestRingSwapPairs(t *testing.T) {
	tests := []struct {
		n        int
		expected []list.ID
	}{
		{0, seq()},
		{1, seq(1)},
		{2, seq(2, 1)},
		{5, seq(2, 1, 4, 3, 5)},
		{6, seq(2, 1, 4, 3, 6, 5)},
	}
	for _, test := range tests {
		r, _ := newRing(t, test.n)
		r.SwapPairs()
		require.NoError(t, r.Check())
		require.Equal(t, test.expected, ids(r), "n = %v", test.n)

		r.SwapPairs()
		require.NoError(t, r.Check())
		require.Equal(t, seq(initial(test.n)...), ids(r), "n = %v", test.n)
	}
}

func TestRingReverse(t *testing.T) {
	for n := range 6 {
		r, _ := newRing(t, n)
		r.Reverse()
		require.NoError(t, r.Check())

		expected := seq(initial(n)...)
		slices.Reverse(expected)
		require.Equal(t, expected, ids(r))

		r.Reverse()
		require.Equal(t, seq(initial(n)...), ids(r))
	}
}

func TestRingSort(t *testing.T) {
	keys := map[list.ID]int{1: 5, 2: 3, 3: 9, 4: 1, 5: 3, 6: 7, 7: 0}
	r, _ := newRing(t, len(keys))
	r.Sort(func(a, b list.ID) bool { return keys[a] < keys[b] })
	require.NoError(t, r.Check())

	got := ids(r)
	require.Len(t, got, len(keys))
	for i := 1; i < len(got); i++ {
		require.LessOrEqual(t, keys[got[i-1]], keys[got[i]])
	}

	// Ties go to the right half of every merge.
	require.Equal(t, seq(7, 4, 5, 2, 1, 6, 3), got)
}

func TestRingSortTrivial(t *testing.T) {
	less := func(a, b list.ID) bool { return a > b }
	for n := range 2 {
		r, _ := newRing(t, n)
		r.Sort(less)
		require.NoError(t, r.Check())
		require.Equal(t, seq(initial(n)...), ids(r))
	}
}

func TestRingCheck(t *testing.T) {
	r, ns := newRing(t, 3)
	r.SetNext(2, 1)
	require.Error(t, r.Check())

	r.SetNext(2, 3)
	require.NoError(t, r.Check())

	delete(ns, 3)
	require.Error(t, r.Check())
}

type chain map[list.ID]list.ID

func (c chain) Next(id list.ID) list.ID  { return c[id] }
func (c chain) SetNext(id, next list.ID) { c[id] = next }

func (c chain) collect(first list.ID) (s []list.ID) {
	for cur := first; cur != list.Nil; cur = c[cur] {
		s = append(s, cur)
	}
	return s
}

func TestMergeSort(t *testing.T) {
	c := chain{4: 2, 2: 3, 3: 1, 1: list.Nil}
	first := list.MergeSort(c, 4, func(a, b list.ID) bool { return a < b })
	require.Equal(t, seq(1, 2, 3, 4), c.collect(first))

	require.Equal(t, list.Nil, list.MergeSort(c, list.Nil, nil))

	single := chain{9: list.Nil}
	require.Equal(t, list.ID(9), list.MergeSort(single, 9, nil))
}

func initial(n int) []int {
	s := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		s = append(s, i)
	}
	return s
}
