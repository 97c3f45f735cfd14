package atomkit

import (
	"sync/atomic"
	"unsafe"
)

// pointerCell binds the Pointer kind to the sync/atomic pointer
// primitives. The cell holds a live unsafe.Pointer so the garbage
// collector tracks the referent; the pointer is never laundered through an
// integer.
type pointerCell struct {
	p unsafe.Pointer
}

func newPointerCell(v Pointer) *pointerCell {
	return &pointerCell{p: v.p}
}

func (c *pointerCell) load(_ Ordering) Pointer {
	return Pointer{p: atomic.LoadPointer(&c.p)}
}

func (c *pointerCell) store(v Pointer, _ Ordering) {
	atomic.StorePointer(&c.p, v.p)
}

func (c *pointerCell) swap(v Pointer, _ Ordering) Pointer {
	return Pointer{p: atomic.SwapPointer(&c.p, v.p)}
}

func (c *pointerCell) compareExchange(current, next Pointer, _, _ Ordering) (Pointer, bool) {
	for {
		if atomic.CompareAndSwapPointer(&c.p, current.p, next.p) {
			return current, true
		}
		if got := atomic.LoadPointer(&c.p); got != current.p {
			return Pointer{p: got}, false
		}
	}
}

func (c *pointerCell) compareExchangeWeak(current, next Pointer, _, _ Ordering) (Pointer, bool) {
	if atomic.CompareAndSwapPointer(&c.p, current.p, next.p) {
		return current, true
	}
	return Pointer{p: atomic.LoadPointer(&c.p)}, false
}

func (c *pointerCell) fetchUpdate(set, fetch Ordering, f func(Pointer) (Pointer, bool)) (Pointer, bool) {
	prev := c.load(fetch)
	for {
		next, ok := f(prev)
		if !ok {
			return prev, false
		}
		got, swapped := c.compareExchangeWeak(prev, next, set, fetch)
		if swapped {
			return prev, true
		}
		prev = got
	}
}

func (c *pointerCell) intoInner() Pointer {
	return Pointer{p: c.p}
}
