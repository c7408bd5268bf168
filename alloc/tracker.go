package alloc

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/eluv-io/errors-go"
)

// Tracker wraps another Allocator and keeps track of every block that
// is currently allocated through it. It detects leaks and invalid or
// repeated frees. A Tracker is not safe for concurrent use.
type Tracker struct {
	// Allocator performs the actual allocations. If it is nil, [Heap]
	// is used.
	Allocator Allocator

	live    map[*byte]int
	bytes   int
	invalid []int
}

func (t *Tracker) parent() Allocator {
	if t.Allocator == nil {
		return Heap{}
	}
	return t.Allocator
}

func (t *Tracker) Alloc(size int) ([]byte, error) {
	block, err := t.parent().Alloc(size)
	if err != nil {
		return nil, err
	}

	if t.live == nil {
		t.live = make(map[*byte]int)
	}
	t.live[id(block)] = size
	t.bytes += size
	return block, nil
}

func (t *Tracker) Free(block []byte) {
	key := id(block)
	size, ok := t.live[key]
	if !ok {
		log.Warn("free of untracked block", "size", len(block))
		t.invalid = append(t.invalid, len(block))
		return
	}

	delete(t.live, key)
	t.bytes -= size
	t.parent().Free(block)
}

// Live returns the number of blocks and total bytes that have been
// allocated but not yet freed.
func (t *Tracker) Live() (blocks, bytes int) {
	return len(t.live), t.bytes
}

// Check returns an error if any blocks are still allocated or if
// there were any frees of blocks that weren't allocated by t or were
// already freed.
func (t *Tracker) Check() error {
	e := errors.Template("alloc.Tracker.Check", errors.K.Invalid)

	if len(t.invalid) > 0 {
		return e(errors.Str("invalid free"), "count", len(t.invalid), "sizes", spew.Sdump(t.invalid))
	}
	if len(t.live) > 0 {
		sizes := make([]int, 0, len(t.live))
		for _, size := range t.live {
			sizes = append(sizes, size)
		}
		return e(errors.Str("leaked blocks"), "blocks", len(t.live), "bytes", t.bytes, "sizes", spew.Sdump(sizes))
	}
	return nil
}
