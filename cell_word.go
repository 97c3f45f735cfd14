package atomkit

import (
	"sync/atomic"
	"unsafe"
)

// word32 collects the kinds carried by a native 32-bit cell. The 8- and
// 16-bit kinds live in the low bits; the cell maintains the invariant that
// the bits above the kind's width are always zero, so plain truncating
// conversions recover the value (including sign).
type word32 interface {
	Int8 | Int16 | Int32 | Uint8 | Uint16 | Uint32
}

// word64 collects the kinds carried by a native 64-bit cell.
type word64 interface {
	Int64 | Uint64
}

type cell32[K word32] struct {
	v atomic.Uint32
}

func newCell32[K word32](v K) *cell32[K] {
	c := &cell32[K]{}
	c.v.Store(c.trunc(v))
	return c
}

func (c *cell32[K]) mask() uint32 {
	var zero K
	return uint32(uint64(1)<<(8*unsafe.Sizeof(zero)) - 1)
}

// trunc converts v to its in-cell form: sign bits above the width are
// stripped so the stored pattern honors the zero-high-bits invariant.
func (c *cell32[K]) trunc(v K) uint32 {
	return uint32(v) & c.mask()
}

func (c *cell32[K]) load(_ Ordering) K {
	return K(c.v.Load())
}

func (c *cell32[K]) store(v K, _ Ordering) {
	c.v.Store(c.trunc(v))
}

func (c *cell32[K]) swap(v K, _ Ordering) K {
	return K(c.v.Swap(c.trunc(v)))
}

func (c *cell32[K]) compareExchange(current, next K, _, _ Ordering) (K, bool) {
	oc, on := c.trunc(current), c.trunc(next)
	for {
		if c.v.CompareAndSwap(oc, on) {
			return current, true
		}
		if got := c.v.Load(); got != oc {
			return K(got), false
		}
	}
}

func (c *cell32[K]) compareExchangeWeak(current, next K, _, _ Ordering) (K, bool) {
	if c.v.CompareAndSwap(c.trunc(current), c.trunc(next)) {
		return current, true
	}
	return K(c.v.Load()), false
}

func (c *cell32[K]) fetchUpdate(set, fetch Ordering, f func(K) (K, bool)) (K, bool) {
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

func (c *cell32[K]) intoInner() K {
	return K(c.v.Load())
}

func (c *cell32[K]) fetchAnd(v K, _ Ordering) K {
	// AND can only clear bits, so the invariant survives natively.
	return K(c.v.And(c.trunc(v)))
}

func (c *cell32[K]) fetchOr(v K, _ Ordering) K {
	return K(c.v.Or(c.trunc(v)))
}

func (c *cell32[K]) fetchXor(v K, _ Ordering) K {
	t := c.trunc(v)
	for {
		old := c.v.Load()
		if c.v.CompareAndSwap(old, old^t) {
			return K(old)
		}
	}
}

func (c *cell32[K]) fetchNand(v K, _ Ordering) K {
	t, m := c.trunc(v), c.mask()
	for {
		old := c.v.Load()
		if c.v.CompareAndSwap(old, ^(old&t)&m) {
			return K(old)
		}
	}
}

func (c *cell32[K]) fetchAdd(v K, _ Ordering) K {
	if m := c.mask(); m != ^uint32(0) {
		// Sub-word: a native add could carry past the width.
		d := c.trunc(v)
		for {
			old := c.v.Load()
			if c.v.CompareAndSwap(old, (old+d)&m) {
				return K(old)
			}
		}
	}
	d := uint32(v)
	return K(c.v.Add(d) - d)
}

func (c *cell32[K]) fetchSub(v K, _ Ordering) K {
	if m := c.mask(); m != ^uint32(0) {
		d := c.trunc(v)
		for {
			old := c.v.Load()
			if c.v.CompareAndSwap(old, (old-d)&m) {
				return K(old)
			}
		}
	}
	d := uint32(v)
	return K(c.v.Add(-d) + d)
}

func (c *cell32[K]) fetchMax(v K, _ Ordering) K {
	for {
		old := c.v.Load()
		if cur := K(old); v <= cur {
			return cur
		}
		if c.v.CompareAndSwap(old, c.trunc(v)) {
			return K(old)
		}
	}
}

func (c *cell32[K]) fetchMin(v K, _ Ordering) K {
	for {
		old := c.v.Load()
		if cur := K(old); v >= cur {
			return cur
		}
		if c.v.CompareAndSwap(old, c.trunc(v)) {
			return K(old)
		}
	}
}

type cell64[K word64] struct {
	v atomic.Uint64
}

func newCell64[K word64](v K) *cell64[K] {
	c := &cell64[K]{}
	c.v.Store(uint64(v))
	return c
}

func (c *cell64[K]) load(_ Ordering) K {
	return K(c.v.Load())
}

func (c *cell64[K]) store(v K, _ Ordering) {
	c.v.Store(uint64(v))
}

func (c *cell64[K]) swap(v K, _ Ordering) K {
	return K(c.v.Swap(uint64(v)))
}

func (c *cell64[K]) compareExchange(current, next K, _, _ Ordering) (K, bool) {
	oc, on := uint64(current), uint64(next)
	for {
		if c.v.CompareAndSwap(oc, on) {
			return current, true
		}
		if got := c.v.Load(); got != oc {
			return K(got), false
		}
	}
}

func (c *cell64[K]) compareExchangeWeak(current, next K, _, _ Ordering) (K, bool) {
	if c.v.CompareAndSwap(uint64(current), uint64(next)) {
		return current, true
	}
	return K(c.v.Load()), false
}

func (c *cell64[K]) fetchUpdate(set, fetch Ordering, f func(K) (K, bool)) (K, bool) {
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

func (c *cell64[K]) intoInner() K {
	return K(c.v.Load())
}

func (c *cell64[K]) fetchAnd(v K, _ Ordering) K {
	return K(c.v.And(uint64(v)))
}

func (c *cell64[K]) fetchOr(v K, _ Ordering) K {
	return K(c.v.Or(uint64(v)))
}

func (c *cell64[K]) fetchXor(v K, _ Ordering) K {
	t := uint64(v)
	for {
		old := c.v.Load()
		if c.v.CompareAndSwap(old, old^t) {
			return K(old)
		}
	}
}

func (c *cell64[K]) fetchNand(v K, _ Ordering) K {
	t := uint64(v)
	for {
		old := c.v.Load()
		if c.v.CompareAndSwap(old, ^(old&t)) {
			return K(old)
		}
	}
}

func (c *cell64[K]) fetchAdd(v K, _ Ordering) K {
	d := uint64(v)
	return K(c.v.Add(d) - d)
}

func (c *cell64[K]) fetchSub(v K, _ Ordering) K {
	d := uint64(v)
	return K(c.v.Add(-d) + d)
}

func (c *cell64[K]) fetchMax(v K, _ Ordering) K {
	for {
		old := c.v.Load()
		if cur := K(old); v <= cur {
			return cur
		}
		if c.v.CompareAndSwap(old, uint64(v)) {
			return K(old)
		}
	}
}

func (c *cell64[K]) fetchMin(v K, _ Ordering) K {
	for {
		old := c.v.Load()
		if cur := K(old); v >= cur {
			return cur
		}
		if c.v.CompareAndSwap(old, uint64(v)) {
			return K(old)
		}
	}
}

type uintptrCell struct {
	v atomic.Uintptr
}

func newUintptrCell(v Uintptr) *uintptrCell {
	c := &uintptrCell{}
	c.v.Store(uintptr(v))
	return c
}

func (c *uintptrCell) load(_ Ordering) Uintptr {
	return Uintptr(c.v.Load())
}

func (c *uintptrCell) store(v Uintptr, _ Ordering) {
	c.v.Store(uintptr(v))
}

func (c *uintptrCell) swap(v Uintptr, _ Ordering) Uintptr {
	return Uintptr(c.v.Swap(uintptr(v)))
}

func (c *uintptrCell) compareExchange(current, next Uintptr, _, _ Ordering) (Uintptr, bool) {
	oc, on := uintptr(current), uintptr(next)
	for {
		if c.v.CompareAndSwap(oc, on) {
			return current, true
		}
		if got := c.v.Load(); got != oc {
			return Uintptr(got), false
		}
	}
}

func (c *uintptrCell) compareExchangeWeak(current, next Uintptr, _, _ Ordering) (Uintptr, bool) {
	if c.v.CompareAndSwap(uintptr(current), uintptr(next)) {
		return current, true
	}
	return Uintptr(c.v.Load()), false
}

func (c *uintptrCell) fetchUpdate(set, fetch Ordering, f func(Uintptr) (Uintptr, bool)) (Uintptr, bool) {
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

func (c *uintptrCell) intoInner() Uintptr {
	return Uintptr(c.v.Load())
}

func (c *uintptrCell) fetchAnd(v Uintptr, _ Ordering) Uintptr {
	return Uintptr(c.v.And(uintptr(v)))
}

func (c *uintptrCell) fetchOr(v Uintptr, _ Ordering) Uintptr {
	return Uintptr(c.v.Or(uintptr(v)))
}

func (c *uintptrCell) fetchXor(v Uintptr, _ Ordering) Uintptr {
	t := uintptr(v)
	for {
		old := c.v.Load()
		if c.v.CompareAndSwap(old, old^t) {
			return Uintptr(old)
		}
	}
}

func (c *uintptrCell) fetchNand(v Uintptr, _ Ordering) Uintptr {
	t := uintptr(v)
	for {
		old := c.v.Load()
		if c.v.CompareAndSwap(old, ^(old&t)) {
			return Uintptr(old)
		}
	}
}

func (c *uintptrCell) fetchAdd(v Uintptr, _ Ordering) Uintptr {
	d := uintptr(v)
	return Uintptr(c.v.Add(d) - d)
}

func (c *uintptrCell) fetchSub(v Uintptr, _ Ordering) Uintptr {
	d := uintptr(v)
	return Uintptr(c.v.Add(-d) + d)
}

func (c *uintptrCell) fetchMax(v Uintptr, _ Ordering) Uintptr {
	for {
		old := c.v.Load()
		if cur := Uintptr(old); v <= cur {
			return cur
		}
		if c.v.CompareAndSwap(old, uintptr(v)) {
			return Uintptr(old)
		}
	}
}

func (c *uintptrCell) fetchMin(v Uintptr, _ Ordering) Uintptr {
	for {
		old := c.v.Load()
		if cur := Uintptr(old); v >= cur {
			return cur
		}
		if c.v.CompareAndSwap(old, uintptr(v)) {
			return Uintptr(old)
		}
	}
}
