// Package atomkit provides lock-free atomic containers for domain types.
//
// Go's sync/atomic package covers a fixed set of primitive types. atomkit
// extends atomic access to newtypes, single-field structs, and C-like
// enumerations by way of a representation protocol: a type declares a
// lossless mapping to one of the primitive kinds (Pack/Unpack), and the
// generic Atomic container forwards every operation through that mapping
// onto the native atomic cell.
//
// A minimal hand-written atom:
//
//	type Port struct{ N uint16 }
//
//	func (v Port) Pack() atomkit.Uint16 { return atomkit.Uint16(v.N) }
//
//	func (Port) Unpack(src atomkit.Uint16) Port { return Port{N: uint16(src)} }
//
//	a := atomkit.New[Port, atomkit.Uint16](Port{N: 80})
//	a.Store(Port{N: 8080}, atomkit.SeqCst)
//	p := a.Load(atomkit.SeqCst)
//
// Pack must be total, cheap, and side-effect free: the container calls it
// on every write path. Unpack must reconstruct the exact value for any bit
// pattern produced by Pack. Unpack is invoked on the zero value of the
// type and must not read its receiver.
//
// The atomgen tool (cmd/atomgen) derives Pack/Unpack for eligible shapes
// from //atomkit:atom directives, so most atoms are never written by hand.
//
// # Capabilities
//
// Bitwise fetch operations (FetchAnd, FetchNand, FetchOr, FetchXor) and
// integer fetch operations (FetchAdd, FetchSub, FetchMax, FetchMin) act on
// the representation's bits, not on the domain type. They are therefore
// opt-in: a type unlocks them by carrying the AtomLogic or AtomInteger
// marker method, asserting that every bit pattern those operations can
// produce is still a valid encoding. A bitset newtype is a good AtomLogic
// candidate; an enumeration never is, because combining two valid
// discriminants can yield a value with no corresponding variant.
//
// # Faults
//
// When a capability operation or a direct Unpack call presents a bit
// pattern outside the type's domain, the unpacking side panics with a
// *Fault rather than coercing the value. Silently repairing the bits would
// corrupt every subsequent read of the container.
package atomkit
