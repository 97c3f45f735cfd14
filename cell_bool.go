package atomkit

import "sync/atomic"

// boolCell binds the Bool kind to atomic.Bool. The logic family is
// implemented logically so every result stays a valid boolean: on a
// one-bit domain, bitwise and logical combination coincide except for
// NAND, whose bitwise form could mint patterns outside {0, 1}.
type boolCell struct {
	v atomic.Bool
}

func newBoolCell(v Bool) *boolCell {
	c := &boolCell{}
	c.v.Store(bool(v))
	return c
}

func (c *boolCell) load(_ Ordering) Bool {
	return Bool(c.v.Load())
}

func (c *boolCell) store(v Bool, _ Ordering) {
	c.v.Store(bool(v))
}

func (c *boolCell) swap(v Bool, _ Ordering) Bool {
	return Bool(c.v.Swap(bool(v)))
}

func (c *boolCell) compareExchange(current, next Bool, _, _ Ordering) (Bool, bool) {
	oc, on := bool(current), bool(next)
	for {
		if c.v.CompareAndSwap(oc, on) {
			return current, true
		}
		if got := c.v.Load(); got != oc {
			return Bool(got), false
		}
	}
}

func (c *boolCell) compareExchangeWeak(current, next Bool, _, _ Ordering) (Bool, bool) {
	if c.v.CompareAndSwap(bool(current), bool(next)) {
		return current, true
	}
	return Bool(c.v.Load()), false
}

func (c *boolCell) fetchUpdate(set, fetch Ordering, f func(Bool) (Bool, bool)) (Bool, bool) {
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

func (c *boolCell) intoInner() Bool {
	return Bool(c.v.Load())
}

func (c *boolCell) fetchLogic(v Bool, op func(a, b bool) bool) Bool {
	for {
		old := c.v.Load()
		if c.v.CompareAndSwap(old, op(old, bool(v))) {
			return Bool(old)
		}
	}
}

func (c *boolCell) fetchAnd(v Bool, _ Ordering) Bool {
	return c.fetchLogic(v, func(a, b bool) bool { return a && b })
}

func (c *boolCell) fetchNand(v Bool, _ Ordering) Bool {
	return c.fetchLogic(v, func(a, b bool) bool { return !(a && b) })
}

func (c *boolCell) fetchOr(v Bool, _ Ordering) Bool {
	return c.fetchLogic(v, func(a, b bool) bool { return a || b })
}

func (c *boolCell) fetchXor(v Bool, _ Ordering) Bool {
	return c.fetchLogic(v, func(a, b bool) bool { return a != b })
}
