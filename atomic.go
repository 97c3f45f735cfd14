package atomkit

import "fmt"

// Atomic is a lock-free container for a value of the representable type T.
//
// Any number of goroutines may call its methods concurrently through a
// shared pointer; all mutation goes through the native atomic cell of T's
// primitive kind. Every operation is one binding call wrapped by one Pack
// or Unpack, allocation-free after New.
//
// The second type parameter is T's representation kind. Go cannot infer it
// from the Atom constraint, so instantiation spells both:
//
//	a := atomkit.New[Port, atomkit.Uint16](Port{N: 80})
//
// atomgen emits a per-type constructor that hides this.
type Atomic[T Atom[T, R], R Repr] struct {
	noCopy noCopy
	cell   primCell[R]
}

// New creates a container holding v.
func New[T Atom[T, R], R Repr](v T) *Atomic[T, R] {
	return &Atomic[T, R]{cell: newPrimCell(v.Pack())}
}

// IntoInner returns the contained value, reading the cell as ordinary
// memory. The caller must hold the only reference to a: this is the one
// operation that is not safe under concurrent use, and a must not be used
// afterwards.
func (a *Atomic[T, R]) IntoInner() T {
	var zero T
	return zero.Unpack(a.cell.intoInner())
}

// Load returns the current value. Valid orderings: Relaxed, Acquire,
// SeqCst.
func (a *Atomic[T, R]) Load(order Ordering) T {
	checkLoadOrder(order)
	var zero T
	return zero.Unpack(a.cell.load(order))
}

// Store replaces the current value. Valid orderings: Relaxed, Release,
// SeqCst.
func (a *Atomic[T, R]) Store(v T, order Ordering) {
	checkStoreOrder(order)
	a.cell.store(v.Pack(), order)
}

// Swap replaces the current value and returns the previous one.
func (a *Atomic[T, R]) Swap(v T, order Ordering) T {
	checkRMWOrder(order)
	var zero T
	return zero.Unpack(a.cell.swap(v.Pack(), order))
}

// CompareExchange stores next if the current value equals current.
// It returns the previous value and whether the exchange committed; on
// failure the returned value is the one actually observed. success and
// failure order the read-modify-write and the failing load independently;
// failure must not be Release or AcqRel.
func (a *Atomic[T, R]) CompareExchange(current, next T, success, failure Ordering) (T, bool) {
	checkCASOrders(success, failure)
	prev, ok := a.cell.compareExchange(current.Pack(), next.Pack(), success, failure)
	var zero T
	return zero.Unpack(prev), ok
}

// CompareExchangeWeak is CompareExchange except that it may report failure
// even when the comparison would have succeeded. It can be cheaper on some
// platforms; callers use it in retry loops.
func (a *Atomic[T, R]) CompareExchangeWeak(current, next T, success, failure Ordering) (T, bool) {
	checkCASOrders(success, failure)
	prev, ok := a.cell.compareExchangeWeak(current.Pack(), next.Pack(), success, failure)
	var zero T
	return zero.Unpack(prev), ok
}

// FetchUpdate applies f to the current value and attempts to store the
// result with a weak compare-exchange, retrying on contention. f may run
// multiple times under contention and exactly once for the attempt that
// commits; it must be side-effect free. If f returns ok=false the
// container is left unchanged.
//
// The returned value is the one f was last applied to; the bool reports
// whether an update committed. The retry loop is unbounded optimistic:
// it terminates unless contention is indefinite.
func (a *Atomic[T, R]) FetchUpdate(set, fetch Ordering, f func(T) (T, bool)) (T, bool) {
	checkCASOrders(set, fetch)
	var zero T
	prev, ok := a.cell.fetchUpdate(set, fetch, func(r R) (R, bool) {
		next, keep := f(zero.Unpack(r))
		if !keep {
			var zr R
			return zr, false
		}
		return next.Pack(), true
	})
	return zero.Unpack(prev), ok
}

// String formats a snapshot of the current value. This, together with New,
// is the whole surface external formatters and serializers need.
func (a *Atomic[T, R]) String() string {
	return fmt.Sprint(a.Load(SeqCst))
}

func (a *Atomic[T, R]) logic() logicCell[R] {
	c, ok := a.cell.(logicCell[R])
	if !ok {
		// Unreachable: every LogicRepr kind's binding implements logicCell.
		panic("atomkit: binding does not support logic operations")
	}
	return c
}

func (a *Atomic[T, R]) integer() integerCell[R] {
	c, ok := a.cell.(integerCell[R])
	if !ok {
		panic("atomkit: binding does not support integer operations")
	}
	return c
}

// The capability-gated operation families. They are package functions
// rather than methods so the gate is a compile-time constraint: only types
// carrying the corresponding marker instantiate them. Each returns the
// previous value, like its sync/atomic counterpart.

// FetchAnd atomically ANDs the representation bits with v's and returns
// the previous value.
func FetchAnd[T AtomLogic[T, R], R LogicRepr](a *Atomic[T, R], v T, order Ordering) T {
	checkRMWOrder(order)
	var zero T
	return zero.Unpack(a.logic().fetchAnd(v.Pack(), order))
}

// FetchNand atomically NANDs the representation bits with v's and returns
// the previous value.
func FetchNand[T AtomLogic[T, R], R LogicRepr](a *Atomic[T, R], v T, order Ordering) T {
	checkRMWOrder(order)
	var zero T
	return zero.Unpack(a.logic().fetchNand(v.Pack(), order))
}

// FetchOr atomically ORs the representation bits with v's and returns the
// previous value.
func FetchOr[T AtomLogic[T, R], R LogicRepr](a *Atomic[T, R], v T, order Ordering) T {
	checkRMWOrder(order)
	var zero T
	return zero.Unpack(a.logic().fetchOr(v.Pack(), order))
}

// FetchXor atomically XORs the representation bits with v's and returns
// the previous value.
func FetchXor[T AtomLogic[T, R], R LogicRepr](a *Atomic[T, R], v T, order Ordering) T {
	checkRMWOrder(order)
	var zero T
	return zero.Unpack(a.logic().fetchXor(v.Pack(), order))
}

// FetchAdd atomically adds v's representation and returns the previous
// value. The addition wraps at the representation's width.
func FetchAdd[T AtomInteger[T, R], R IntegerRepr](a *Atomic[T, R], v T, order Ordering) T {
	checkRMWOrder(order)
	var zero T
	return zero.Unpack(a.integer().fetchAdd(v.Pack(), order))
}

// FetchSub atomically subtracts v's representation and returns the
// previous value. The subtraction wraps at the representation's width.
func FetchSub[T AtomInteger[T, R], R IntegerRepr](a *Atomic[T, R], v T, order Ordering) T {
	checkRMWOrder(order)
	var zero T
	return zero.Unpack(a.integer().fetchSub(v.Pack(), order))
}

// FetchMax atomically stores the maximum of the current and v's
// representation and returns the previous value.
func FetchMax[T AtomInteger[T, R], R IntegerRepr](a *Atomic[T, R], v T, order Ordering) T {
	checkRMWOrder(order)
	var zero T
	return zero.Unpack(a.integer().fetchMax(v.Pack(), order))
}

// FetchMin atomically stores the minimum of the current and v's
// representation and returns the previous value.
func FetchMin[T AtomInteger[T, R], R IntegerRepr](a *Atomic[T, R], v T, order Ordering) T {
	checkRMWOrder(order)
	var zero T
	return zero.Unpack(a.integer().fetchMin(v.Pack(), order))
}

// noCopy triggers `go vet -copylocks` on value copies of Atomic. Copies
// would share the binding and confuse ownership of IntoInner.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
