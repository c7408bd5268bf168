// Package ringq implements a queue of strings on top of a circular
// doubly-linked list, along with a handful of in-place algorithms
// that rearrange it.
//
// A Queue is not safe for concurrent use.
package ringq

import (
	"iter"

	"deedles.dev/ringq/alloc"
	"deedles.dev/ringq/internal/list"
	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"
)

var log = elog.Get("/ringq")

// headSize is the size of the block that a Queue allocates for its
// sentinel when it is created.
const headSize = 16

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Queue is a double-ended queue of strings. Use [New] to create one.
// A nil *Queue behaves like an empty one for every method that
// doesn't report an error.
//
// A Queue must not be copied. A copy behaves like a freed Queue.
type Queue struct {
	_ noCopy

	self  *Queue
	ring  list.Ring
	arena arena
	a     alloc.Allocator
	head  []byte
	log   *elog.Log
}

// Option configures a Queue created by [New].
type Option func(*Queue)

// WithAllocator makes the Queue allocate all of its memory from a.
// The default is [alloc.Heap].
func WithAllocator(a alloc.Allocator) Option {
	return func(q *Queue) {
		if a != nil {
			q.a = a
		}
	}
}

// WithLog sets the logger used by the Queue.
func WithLog(l *elog.Log) Option {
	return func(q *Queue) {
		if l != nil {
			q.log = l
		}
	}
}

// New returns a new, empty Queue. It fails only if the allocator
// fails to provide memory for the queue's sentinel.
func New(opts ...Option) (*Queue, error) {
	q := Queue{
		a:   alloc.Heap{},
		log: log,
	}
	for _, opt := range opts {
		opt(&q)
	}

	head, err := q.a.Alloc(headSize)
	if err != nil {
		q.log.Debug("allocating queue head failed", "error", err)
		return nil, errors.E("ringq.New", errors.K.Unavailable, err, "size", headSize)
	}
	q.head = head
	q.self = &q

	q.arena.init()
	q.ring.Init(&q.arena)
	return &q, nil
}

func (q *Queue) valid() bool {
	return q != nil && q.self == q && q.head != nil
}

// Free releases every element in q followed by q itself. After this
// q must not be used again. Calling Free on a nil Queue does nothing.
func (q *Queue) Free() {
	if !q.valid() {
		return
	}

	var n int
	for id := range q.ring.All() {
		q.ring.Unlink(id)
		q.arena.take(id).Release()
		n++
	}
	if q.log.IsDebug() {
		q.log.Debug("queue freed", "released", n)
	}

	q.a.Free(q.head)
	q.head = nil
}

func (q *Queue) insert(op string, s string, head bool) error {
	if !q.valid() {
		return errors.E(op, errors.K.Invalid, errors.Str("nil or freed queue"))
	}

	e, err := newElement(q.a, s)
	if err != nil {
		q.log.Debug("allocating element failed", "op", op, "size", len(s)+1, "error", err)
		return errors.E(op, errors.K.Unavailable, err, "size", len(s)+1)
	}

	q.arena.add(e)
	if head {
		q.ring.PushFront(e.id)
		return nil
	}
	q.ring.PushBack(e.id)
	return nil
}

// InsertHead adds a copy of s to the head of q.
func (q *Queue) InsertHead(s string) error {
	return q.insert("ringq.InsertHead", s, true)
}

// InsertTail adds a copy of s to the tail of q.
func (q *Queue) InsertTail(s string) error {
	return q.insert("ringq.InsertTail", s, false)
}

func (q *Queue) remove(id list.ID, buf []byte) *Element {
	q.ring.Unlink(id)
	e := q.arena.take(id)
	e.copyTo(buf)
	return e
}

// RemoveHead unlinks the element at the head of q and returns it. If
// buf is not empty, as much of the element's value as fits in it is
// copied into it followed by a zero byte. Longer values are silently
// truncated.
//
// The element's memory is not released. That is the responsibility
// of the caller, via [Element.Release].
//
// If q is nil or empty, RemoveHead returns nil.
func (q *Queue) RemoveHead(buf []byte) *Element {
	if !q.valid() || q.ring.Empty() {
		return nil
	}
	return q.remove(q.ring.Front(), buf)
}

// RemoveTail is like [Queue.RemoveHead] but removes from the tail.
func (q *Queue) RemoveTail(buf []byte) *Element {
	if !q.valid() || q.ring.Empty() {
		return nil
	}
	return q.remove(q.ring.Back(), buf)
}

// Size returns the number of elements in q. It is O(n).
func (q *Queue) Size() int {
	if !q.valid() {
		return 0
	}
	return q.ring.Len()
}

// Elements returns an iterator over the elements of q from head to
// tail.
func (q *Queue) Elements() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		if !q.valid() {
			return
		}
		for id := range q.ring.All() {
			if !yield(q.arena.get(id)) {
				return
			}
		}
	}
}

// Values returns an iterator over the values in q from head to tail.
func (q *Queue) Values() iter.Seq[string] {
	return func(yield func(string) bool) {
		for e := range q.Elements() {
			if !yield(e.Value()) {
				return
			}
		}
	}
}

// Backward returns an iterator over the values in q from tail to
// head.
func (q *Queue) Backward() iter.Seq[string] {
	return func(yield func(string) bool) {
		if !q.valid() {
			return
		}
		for id := range q.ring.Backward() {
			if !yield(q.arena.get(id).Value()) {
				return
			}
		}
	}
}

// Slice returns the values in q from head to tail.
func (q *Queue) Slice() []string {
	var s []string
	for v := range q.Values() {
		s = append(s, v)
	}
	return s
}

// Check verifies the structural invariants of q: every link is
// symmetric, every linked element belongs to q, and every value is
// zero-terminated. It is intended for tests.
func (q *Queue) Check() error {
	if !q.valid() {
		return nil
	}

	err := q.ring.Check()
	if err != nil {
		return errors.E("ringq.Check", errors.K.Invalid, err)
	}

	var n int
	for id := range q.ring.All() {
		e := q.arena.get(id)
		if e.id != id {
			return errors.E("ringq.Check", errors.K.Invalid, errors.Str("element ID mismatch"), "id", id, "element", e.id)
		}
		if !e.terminated() {
			return errors.E("ringq.Check", errors.K.Invalid, errors.Str("unterminated value"), "id", id)
		}
		n++
	}
	if n != q.arena.len() {
		return errors.E("ringq.Check", errors.K.Invalid, errors.Str("unlinked elements in arena"), "linked", n, "owned", q.arena.len())
	}
	return nil
}
