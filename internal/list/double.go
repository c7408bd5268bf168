package list

import (
	"iter"

	"github.com/eluv-io/errors-go"
)

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// ID identifies a node. IDs are handed out by whatever owns the
// nodes, usually an arena, and are resolved to nodes via a
// [Resolver].
type ID uint64

const (
	// Head is the ID of a [Ring]'s sentinel node. It never refers to
	// a payload.
	Head ID = 0

	// Nil is the absent link. It only appears in the next links of a
	// [Chain] and never in a consistent [Ring].
	Nil ID = ^ID(0)
)

// Resolver maps IDs to the nodes that they identify.
type Resolver interface {
	Node(id ID) *Node
}

// Node holds the links that position a value in a [Ring]. A Node that
// is not in a ring links to itself.
type Node struct {
	prev, next ID
}

// Detach self-links n, marking it as belonging to no ring.
func (n *Node) Detach(self ID) {
	n.prev = self
	n.next = self
}

// Linked reports whether n is currently part of a ring other than as
// a lone self-linked node.
func (n *Node) Linked(self ID) bool {
	return n.next != self || n.prev != self
}

// Ring is a circular doubly-linked list with a sentinel. The nodes
// themselves live elsewhere and are looked up through the Resolver
// that the Ring was initialized with. A Ring never allocates or frees
// the nodes that it links. A Ring must not be copied after Init.
type Ring struct {
	_ noCopy

	head Node
	res  Resolver
}

// Init resets r to an empty ring whose nodes are resolved by res.
func (r *Ring) Init(res Resolver) {
	r.res = res
	r.head.Detach(Head)
}

func (r *Ring) node(id ID) *Node {
	if id == Head {
		return &r.head
	}
	return r.res.Node(id)
}

// Empty returns true if r has no nodes besides the sentinel.
func (r *Ring) Empty() bool {
	return r.head.next == Head
}

// Singular returns true if r has exactly one node besides the
// sentinel.
func (r *Ring) Singular() bool {
	return !r.Empty() && r.head.next == r.head.prev
}

// Front returns the first node of the ring, or Head if it is empty.
func (r *Ring) Front() ID {
	return r.head.next
}

// Back returns the last node of the ring, or Head if it is empty.
func (r *Ring) Back() ID {
	return r.head.prev
}

// Next returns the node following id.
func (r *Ring) Next(id ID) ID {
	return r.node(id).next
}

// Prev returns the node preceding id.
func (r *Ring) Prev(id ID) ID {
	return r.node(id).prev
}

// SetNext sets the next link of id without touching anything else.
// Together with Next it lets r serve as a [Chain].
func (r *Ring) SetNext(id, next ID) {
	r.node(id).next = next
}

func (r *Ring) link(id, prev, next ID) {
	n := r.node(id)
	n.prev = prev
	n.next = next
	r.node(prev).next = id
	r.node(next).prev = id
}

// InsertAfter links id directly after ref.
func (r *Ring) InsertAfter(ref, id ID) {
	r.link(id, ref, r.node(ref).next)
}

// InsertBefore links id directly before ref.
func (r *Ring) InsertBefore(ref, id ID) {
	r.link(id, r.node(ref).prev, ref)
}

// PushFront links id at the front of the ring.
func (r *Ring) PushFront(id ID) {
	r.InsertAfter(Head, id)
}

// PushBack links id at the back of the ring.
func (r *Ring) PushBack(id ID) {
	r.InsertBefore(Head, id)
}

// Unlink removes id from the ring and self-links it. The node itself
// is left to its owner.
func (r *Ring) Unlink(id ID) {
	n := r.node(id)
	r.node(n.prev).next = n.next
	r.node(n.next).prev = n.prev
	n.Detach(id)
}

// MoveToBack unlinks id from wherever it is and relinks it at the
// back of the ring.
func (r *Ring) MoveToBack(id ID) {
	r.Unlink(id)
	r.PushBack(id)
}

// All returns an iterator over the nodes of the ring from front to
// back. The sentinel is never yielded. It is safe to unlink the
// currently-yielded node during iteration.
func (r *Ring) All() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		cur := r.head.next
		for cur != Head {
			next := r.node(cur).next
			if !yield(cur) {
				return
			}
			cur = next
		}
	}
}

// Backward is like [Ring.All] but goes from back to front.
func (r *Ring) Backward() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		cur := r.head.prev
		for cur != Head {
			prev := r.node(cur).prev
			if !yield(cur) {
				return
			}
			cur = prev
		}
	}
}

// Len counts the nodes in the ring. It is O(n).
func (r *Ring) Len() (n int) {
	for range r.All() {
		n++
	}
	return n
}

// SwapPairs exchanges the positions of every two adjacent nodes. If
// the ring has an odd number of nodes the last one stays where it is.
func (r *Ring) SwapPairs() {
	if r.Empty() {
		return
	}

	cur := r.head.next
	for cur != Head {
		c := r.node(cur)
		nextID := c.next
		if nextID == Head {
			return
		}
		n := r.node(nextID)

		r.node(c.prev).next = nextID
		r.node(n.next).prev = cur
		n.prev = c.prev
		c.next = n.next
		n.next = cur
		c.prev = nextID

		cur = c.next
	}
}

// Reverse reverses the ring in place by exchanging the links of every
// node, the sentinel included.
func (r *Ring) Reverse() {
	if r.Empty() {
		return
	}

	cur := Head
	for {
		n := r.node(cur)
		next := n.next
		n.next, n.prev = n.prev, next
		cur = next
		if cur == Head {
			return
		}
	}
}

// Sort sorts the ring in ascending order as defined by less. The
// circle is broken for the duration of the sort, which runs
// [MergeSort] over the next links only, and then the prev links and
// the sentinel are restored.
func (r *Ring) Sort(less func(a, b ID) bool) {
	if r.Empty() || r.Singular() {
		return
	}

	r.node(r.head.prev).next = Nil
	first := MergeSort(r, r.head.next, less)
	r.stitch(first)
}

// stitch turns a Nil-terminated chain starting at first back into a
// consistent ring.
func (r *Ring) stitch(first ID) {
	prev := Head
	for cur := first; cur != Nil; {
		n := r.node(cur)
		r.node(prev).next = cur
		n.prev = prev
		prev = cur
		cur = n.next
	}
	r.node(prev).next = Head
	r.head.prev = prev
}

// Check walks the entire ring and verifies that every node's links
// are symmetric. It returns an error describing the first
// inconsistency found, if any.
func (r *Ring) Check() error {
	e := errors.Template("list.Check", errors.K.Invalid)

	if r.head.next == Head || r.head.prev == Head {
		if r.head.next != r.head.prev {
			return e(errors.Str("half-empty sentinel"), "next", r.head.next, "prev", r.head.prev)
		}
		return nil
	}

	seen := make(map[ID]struct{})
	cur := Head
	for {
		n := r.node(cur)
		if n == nil {
			return e(errors.Str("unresolvable node"), "id", cur)
		}
		if n.next == Nil || n.prev == Nil {
			return e(errors.Str("broken circle"), "id", cur)
		}
		next := r.node(n.next)
		if next == nil {
			return e(errors.Str("unresolvable node"), "id", n.next, "from", cur)
		}
		if next.prev != cur {
			return e(errors.Str("asymmetric link"), "id", cur, "next", n.next, "next_prev", next.prev)
		}
		prev := r.node(n.prev)
		if prev == nil || prev.next != cur {
			return e(errors.Str("asymmetric link"), "id", cur, "prev", n.prev)
		}

		cur = n.next
		if cur == Head {
			return nil
		}
		if _, ok := seen[cur]; ok {
			return e(errors.Str("cycle skips sentinel"), "id", cur)
		}
		seen[cur] = struct{}{}
	}
}
