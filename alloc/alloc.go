// Package alloc provides the memory allocators that back a
// [deedles.dev/ringq.Queue], along with wrappers that inject failures
// and account for leaks.
package alloc

import (
	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"
)

var log = elog.Get("/ringq/alloc")

// ErrInjected is the cause of every failure produced by a [Fault]
// allocator.
var ErrInjected = errors.Str("injected allocation failure")

// An Allocator hands out blocks of memory. Any call to Alloc may
// fail, and callers are expected to check for that every time. Every
// block returned by Alloc must eventually be passed back to Free
// exactly once.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(block []byte)
}

// Heap allocates directly from the Go heap. It never fails for a
// non-negative size. The zero value is ready to use.
type Heap struct{}

func (Heap) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.E("alloc.Heap.Alloc", errors.K.Invalid, "size", size)
	}

	// Every block gets distinct backing memory, even a zero-sized one,
	// so that blocks can be told apart by address.
	return make([]byte, size, max(size, 1)), nil
}

// Free does nothing. The garbage collector reclaims the block once
// it is unreachable.
func (Heap) Free([]byte) {}

// id returns a value that identifies block for as long as it is
// allocated.
func id(block []byte) *byte {
	if cap(block) == 0 {
		return nil
	}
	return &block[:1][0]
}
