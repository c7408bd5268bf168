package list

// Chain is a singly-linked view over nodes. A chain ends at the first
// node whose next link is [Nil].
type Chain interface {
	Next(id ID) ID
	SetNext(id, next ID)
}

// MergeSort sorts the Nil-terminated chain starting at first and
// returns the new first node. Only next links are read and written.
// When two nodes compare equal under less, the one from the right
// half of a split is placed first, so the sort is not stable.
func MergeSort(c Chain, first ID, less func(a, b ID) bool) ID {
	if first == Nil || c.Next(first) == Nil {
		return first
	}

	second := split(c, first)
	return merge(c, MergeSort(c, first, less), MergeSort(c, second, less), less)
}

// split cuts the chain starting at first roughly in half and returns
// the start of the second half.
func split(c Chain, first ID) ID {
	slow, fast := first, c.Next(first)
	for fast != Nil && c.Next(fast) != Nil {
		slow = c.Next(slow)
		fast = c.Next(c.Next(fast))
	}

	second := c.Next(slow)
	c.SetNext(slow, Nil)
	return second
}

func merge(c Chain, l1, l2 ID, less func(a, b ID) bool) ID {
	take := func() (n ID) {
		if less(l1, l2) {
			n, l1 = l1, c.Next(l1)
			return n
		}
		n, l2 = l2, c.Next(l2)
		return n
	}

	first := take()
	tail := first
	for l1 != Nil && l2 != Nil {
		n := take()
		c.SetNext(tail, n)
		tail = n
	}

	switch {
	case l1 != Nil:
		c.SetNext(tail, l1)
	case l2 != Nil:
		c.SetNext(tail, l2)
	default:
		c.SetNext(tail, Nil)
	}
	return first
}
