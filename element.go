package ringq

import (
	"strings"

	"deedles.dev/ringq/alloc"
	"deedles.dev/ringq/internal/list"
)

// elementSize is the size of the block that is allocated for every
// element in addition to the buffer holding its value.
const elementSize = 32

// An Element is a single value stored in a [Queue]. It owns its own
// copy of the value, independent of whatever memory the value was
// inserted from.
//
// An Element returned from one of the Remove methods is no longer
// part of any Queue. The caller is responsible for calling Release
// when it is done with it.
type Element struct {
	id    list.ID
	node  list.Node
	mem   []byte
	value []byte
	a     alloc.Allocator
}

// newElement allocates an Element holding a copy of s, up to but not
// including its first zero byte, if any. If any
// allocation fails, everything that was allocated is freed again and
// the error is returned.
func newElement(a alloc.Allocator, s string) (*Element, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}

	mem, err := a.Alloc(elementSize)
	if err != nil {
		return nil, err
	}

	value, err := a.Alloc(len(s) + 1)
	if err != nil {
		a.Free(mem)
		return nil, err
	}
	copy(value, s)
	value[len(s)] = 0

	return &Element{
		mem:   mem,
		value: value,
		a:     a,
	}, nil
}

// Value returns the string stored in e.
func (e *Element) Value() string {
	if e == nil {
		return ""
	}
	return string(e.bytes())
}

// bytes returns e's value without its terminator.
func (e *Element) bytes() []byte {
	if len(e.value) == 0 {
		return nil
	}
	return e.value[:len(e.value)-1]
}

func (e *Element) terminated() bool {
	return len(e.value) > 0 && e.value[len(e.value)-1] == 0
}

// copyTo copies as much of e's value into buf as fits while leaving
// room for a terminating zero byte, which it then appends.
func (e *Element) copyTo(buf []byte) {
	if len(buf) == 0 {
		return
	}

	n := copy(buf[:len(buf)-1], e.bytes())
	buf[n] = 0
}

// Release frees the memory held by e. It is safe to call more than
// once and on a nil Element. An Element must not be released while it
// is still in a Queue.
func (e *Element) Release() {
	if e == nil || e.a == nil {
		return
	}

	e.a.Free(e.value)
	e.a.Free(e.mem)
	e.value = nil
	e.mem = nil
	e.a = nil
}
