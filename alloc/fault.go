package alloc

import (
	"math/rand/v2"

	"github.com/eluv-io/errors-go"
)

// Fault wraps another Allocator and makes some of its allocations
// fail. It is meant for exercising allocation failure paths in tests.
// A Fault is not safe for concurrent use.
type Fault struct {
	// Allocator performs the allocations that are not failed. If it is
	// nil, [Heap] is used.
	Allocator Allocator

	// FailAfter, if positive, makes the FailAfter-th call to Alloc and
	// every call after it fail.
	FailAfter int

	// Probability is the chance, from 0 to 1, that any given call to
	// Alloc fails.
	Probability float64

	// Rand is used to decide probabilistic failures. If it is nil, the
	// global source from math/rand/v2 is used.
	Rand *rand.Rand

	calls int
}

func (f *Fault) parent() Allocator {
	if f.Allocator == nil {
		return Heap{}
	}
	return f.Allocator
}

func (f *Fault) float() float64 {
	if f.Rand == nil {
		return rand.Float64()
	}
	return f.Rand.Float64()
}

// Alloc allocates a block from the wrapped allocator unless this call
// has been chosen to fail.
func (f *Fault) Alloc(size int) ([]byte, error) {
	f.calls++
	if (f.FailAfter > 0 && f.calls >= f.FailAfter) || (f.Probability > 0 && f.float() < f.Probability) {
		log.Debug("injecting allocation failure", "call", f.calls, "size", size)
		return nil, errors.E("alloc.Fault.Alloc", errors.K.Unavailable, ErrInjected, "call", f.calls, "size", size)
	}
	return f.parent().Alloc(size)
}

// Free returns block to the wrapped allocator.
func (f *Fault) Free(block []byte) {
	f.parent().Free(block)
}

// Calls returns the number of times that Alloc has been called,
// including calls that failed.
func (f *Fault) Calls() int {
	return f.calls
}

// Reset clears the call counter.
func (f *Fault) Reset() {
	f.calls = 0
}
