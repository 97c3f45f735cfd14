package atomkit

// Atom is the representation protocol: T declares a lossless mapping to
// the primitive kind R.
//
// Pack must be total, side-effect free, and cheap — the container calls it
// on every write path. Unpack is usually handed values produced by Pack
// and must reconstruct the exact original. Two exceptions apply: if the
// type carries a capability marker, bit patterns produced by bitwise or
// integer fetch operations reach Unpack; and Unpack can be called directly
// with arbitrary values. Unpack must either map such input to a valid T or
// panic with a *Fault — never coerce it to a default.
//
// Unpack is invoked on the zero value of T and must not read its receiver.
type Atom[T any, R Repr] interface {
	Pack() R
	Unpack(src R) T
}

// AtomLogic marks atoms whose representation bit patterns stay valid under
// bitwise combination, unlocking FetchAnd, FetchNand, FetchOr, and
// FetchXor.
//
// Implement the marker only when T is, in effect, a bag of bits: a bitset
// newtype qualifies, an enumeration does not (combining two valid
// discriminants can produce a value with no variant). The operations act
// on R, not on T.
type AtomLogic[T any, R LogicRepr] interface {
	Atom[T, R]

	// AtomLogic is a marker; it is never called.
	AtomLogic()
}

// AtomInteger marks atoms for which wraparound arithmetic on the
// representation is meaningful, unlocking FetchAdd, FetchSub, FetchMax,
// and FetchMin.
//
// A counter newtype qualifies. A float-backed atom does not: arithmetic on
// IEEE-754 bit patterns is meaningless. The operations act on R, not on T,
// and wrap at R's width.
type AtomInteger[T any, R IntegerRepr] interface {
	Atom[T, R]

	// AtomInteger is a marker; it is never called.
	AtomInteger()
}
