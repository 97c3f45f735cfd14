package atomkit

// The primitive binding layer: one binding per kind, each a thin wrapper
// over the matching sync/atomic cell. Every operation forwards to a
// hardware atomic instruction, directly where Go exposes one and through a
// weak compare-and-swap retry loop otherwise. No binding ever takes a
// lock.
//
// The interfaces are unexported: the bindings are sealed exactly like the
// kind set, and user code reaches them only through Atomic.
//
// Ordering arguments are validated by the container before they reach a
// binding; the bindings execute at Go's sequentially consistent strength.

type primCell[R Repr] interface {
	load(order Ordering) R
	store(v R, order Ordering)
	swap(v R, order Ordering) R

	// compareExchange returns the previous value and whether the exchange
	// committed. The strong form fails only if the observed value differs
	// from current; the weak form may report failure spuriously.
	compareExchange(current, next R, success, failure Ordering) (R, bool)
	compareExchangeWeak(current, next R, success, failure Ordering) (R, bool)

	// fetchUpdate retries f over weak compare-exchanges until one commits
	// or f declines. It returns the last observed value and whether a
	// commit happened; on decline nothing is mutated.
	fetchUpdate(set, fetch Ordering, f func(R) (R, bool)) (R, bool)

	// intoInner reads the cell non-atomically. Callers must hold the only
	// reference to the cell.
	intoInner() R
}

type logicCell[R Repr] interface {
	primCell[R]
	fetchAnd(v R, order Ordering) R
	fetchNand(v R, order Ordering) R
	fetchOr(v R, order Ordering) R
	fetchXor(v R, order Ordering) R
}

type integerCell[R Repr] interface {
	primCell[R]
	fetchAdd(v R, order Ordering) R
	fetchSub(v R, order Ordering) R
	fetchMax(v R, order Ordering) R
	fetchMin(v R, order Ordering) R
}

// newPrimCell selects the binding for R. The kind set is closed, so the
// switch is exhaustive; the runtime assertion bridges from the concrete
// binding back to the caller's type parameter.
func newPrimCell[R Repr](v R) primCell[R] {
	switch x := any(v).(type) {
	case Int8:
		return any(newCell32(x)).(primCell[R])
	case Int16:
		return any(newCell32(x)).(primCell[R])
	case Int32:
		return any(newCell32(x)).(primCell[R])
	case Uint8:
		return any(newCell32(x)).(primCell[R])
	case Uint16:
		return any(newCell32(x)).(primCell[R])
	case Uint32:
		return any(newCell32(x)).(primCell[R])
	case Int64:
		return any(newCell64(x)).(primCell[R])
	case Uint64:
		return any(newCell64(x)).(primCell[R])
	case Uintptr:
		return any(newUintptrCell(x)).(primCell[R])
	case Bool:
		return any(newBoolCell(x)).(primCell[R])
	case Pointer:
		return any(newPointerCell(x)).(primCell[R])
	default:
		// Unreachable: Repr is sealed.
		panic("atomkit: no binding for primitive kind")
	}
}
