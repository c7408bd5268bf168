package ringq

import (
	"math/rand/v2"

	"deedles.dev/ringq/internal/list"
)

// DeleteMiddle removes and releases the element at index n/2,
// counting from zero at the head, where n is the size of q. For
// example, in a queue of six elements the fourth is deleted. It
// returns false if q is nil or empty.
func (q *Queue) DeleteMiddle() bool {
	if !q.valid() || q.ring.Empty() {
		return false
	}

	id := q.ring.Front()
	for range q.ring.Len() / 2 {
		id = q.ring.Next(id)
	}

	q.ring.Unlink(id)
	q.arena.take(id).Release()
	return true
}

// DeleteDuplicates assumes that q is sorted in ascending order and
// deletes elements whose value equals that of the element directly
// after them. A run of equal values is thereby collapsed down to its
// last element. It returns false only if q is nil.
func (q *Queue) DeleteDuplicates() bool {
	if !q.valid() {
		return false
	}
	if q.ring.Empty() || q.ring.Singular() {
		return true
	}

	cur := q.ring.Front()
	for {
		next := q.ring.Next(cur)
		if next == list.Head {
			return true
		}

		if string(q.arena.get(cur).bytes()) == string(q.arena.get(next).bytes()) {
			q.ring.Unlink(cur)
			q.arena.take(cur).Release()
		}
		cur = next
	}
}

// Swap exchanges every two adjacent elements of q. The elements
// themselves are moved, not their values. If q has an odd number of
// elements, the last one stays where it is.
func (q *Queue) Swap() {
	if !q.valid() {
		return
	}
	q.ring.SwapPairs()
}

// Reverse reverses the order of the elements in q without moving any
// of them in memory. Reversing twice restores the original order.
func (q *Queue) Reverse() {
	if !q.valid() {
		return
	}
	q.ring.Reverse()
}

// Sort sorts q in ascending order by value using a merge sort. Equal
// values are not guaranteed to keep their relative order.
func (q *Queue) Sort() {
	if !q.valid() {
		return
	}
	q.ring.Sort(q.less)
}

func (q *Queue) less(a, b list.ID) bool {
	return string(q.arena.get(a).bytes()) < string(q.arena.get(b).bytes())
}

// Rand is a source of uniformly distributed random integers.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// Shuffle randomly permutes q using r. Every permutation is equally
// likely provided that r is uniform. Values returned by r outside of
// [0, n) are reduced modulo n. If r is nil, the automatically
// seeded global source from math/rand/v2 is used.
//
// Each step walks the queue from the head, so Shuffle takes quadratic
// time.
func (q *Queue) Shuffle(r Rand) {
	if !q.valid() || q.ring.Empty() {
		return
	}
	if r == nil {
		r = globalRand{}
	}

	for n := q.ring.Len(); n > 0; n-- {
		k := r.IntN(n) % n
		if k < 0 {
			k += n
		}

		id := q.ring.Front()
		for range k {
			id = q.ring.Next(id)
		}
		q.ring.MoveToBack(id)
	}
}
