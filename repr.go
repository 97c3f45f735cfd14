package atomkit

import "unsafe"

// Repr is the closed set of primitive kinds that support hardware atomic
// operations. Exactly the named kind types in this package implement it;
// the unexported method seals the set. Domain types never join this set —
// they map onto a kind through their Atom implementation.
//
// The set is fixed by what the hardware (and sync/atomic) can do. Adding a
// kind means adding a primitive binding, not implementing an interface.
type Repr interface {
	isRepr()
}

// LogicRepr is the subset of kinds whose bit patterns are meaningful under
// bitwise combination. Every kind except Pointer qualifies; Bool uses
// logical rather than byte-wide combination.
type LogicRepr interface {
	Repr
	isLogicRepr()
}

// IntegerRepr is the subset of kinds supporting wraparound integer
// arithmetic: the fixed-width integers and Uintptr.
type IntegerRepr interface {
	Repr
	isIntegerRepr()
}

// The primitive kinds. Each is an Atom over itself (identity mapping) and
// carries the capability markers its operation families permit.

// Int8 is the 8-bit signed primitive kind.
type Int8 int8

// Int16 is the 16-bit signed primitive kind.
type Int16 int16

// Int32 is the 32-bit signed primitive kind.
type Int32 int32

// Int64 is the 64-bit signed primitive kind.
type Int64 int64

// Uint8 is the 8-bit unsigned primitive kind.
type Uint8 uint8

// Uint16 is the 16-bit unsigned primitive kind.
type Uint16 uint16

// Uint32 is the 32-bit unsigned primitive kind.
type Uint32 uint32

// Uint64 is the 64-bit unsigned primitive kind.
type Uint64 uint64

// Uintptr is the pointer-width unsigned primitive kind.
type Uintptr uintptr

// Bool is the boolean primitive kind. Its logic operations are logical
// (FetchNand of two true values yields false), keeping every result a
// valid boolean encoding.
type Bool bool

// Pointer is the raw pointer primitive kind. It wraps an unsafe.Pointer so
// the garbage collector keeps seeing the referent; it carries no
// capability markers because neither bitwise nor integer operations
// produce a meaningful pointer.
type Pointer struct {
	p unsafe.Pointer
}

// MakePointer wraps p as a Pointer kind value. p may be nil.
func MakePointer(p unsafe.Pointer) Pointer {
	return Pointer{p: p}
}

// UnsafePointer returns the wrapped pointer.
func (v Pointer) UnsafePointer() unsafe.Pointer {
	return v.p
}

// IsNil reports whether the wrapped pointer is nil.
func (v Pointer) IsNil() bool {
	return v.p == nil
}

func (Int8) isRepr()    {}
func (Int16) isRepr()   {}
func (Int32) isRepr()   {}
func (Int64) isRepr()   {}
func (Uint8) isRepr()   {}
func (Uint16) isRepr()  {}
func (Uint32) isRepr()  {}
func (Uint64) isRepr()  {}
func (Uintptr) isRepr() {}
func (Bool) isRepr()    {}
func (Pointer) isRepr() {}

func (Int8) isLogicRepr()    {}
func (Int16) isLogicRepr()   {}
func (Int32) isLogicRepr()   {}
func (Int64) isLogicRepr()   {}
func (Uint8) isLogicRepr()   {}
func (Uint16) isLogicRepr()  {}
func (Uint32) isLogicRepr()  {}
func (Uint64) isLogicRepr()  {}
func (Uintptr) isLogicRepr() {}
func (Bool) isLogicRepr()    {}

func (Int8) isIntegerRepr()    {}
func (Int16) isIntegerRepr()   {}
func (Int32) isIntegerRepr()   {}
func (Int64) isIntegerRepr()   {}
func (Uint8) isIntegerRepr()   {}
func (Uint16) isIntegerRepr()  {}
func (Uint32) isIntegerRepr()  {}
func (Uint64) isIntegerRepr()  {}
func (Uintptr) isIntegerRepr() {}

// Identity Atom implementations for the kinds themselves.

func (v Int8) Pack() Int8            { return v }
func (Int8) Unpack(src Int8) Int8    { return src }
func (v Int16) Pack() Int16          { return v }
func (Int16) Unpack(src Int16) Int16 { return src }
func (v Int32) Pack() Int32          { return v }
func (Int32) Unpack(src Int32) Int32 { return src }
func (v Int64) Pack() Int64          { return v }
func (Int64) Unpack(src Int64) Int64 { return src }

func (v Uint8) Pack() Uint8             { return v }
func (Uint8) Unpack(src Uint8) Uint8    { return src }
func (v Uint16) Pack() Uint16           { return v }
func (Uint16) Unpack(src Uint16) Uint16 { return src }
func (v Uint32) Pack() Uint32           { return v }
func (Uint32) Unpack(src Uint32) Uint32 { return src }
func (v Uint64) Pack() Uint64           { return v }
func (Uint64) Unpack(src Uint64) Uint64 { return src }

func (v Uintptr) Pack() Uintptr            { return v }
func (Uintptr) Unpack(src Uintptr) Uintptr { return src }

func (v Bool) Pack() Bool         { return v }
func (Bool) Unpack(src Bool) Bool { return src }

func (v Pointer) Pack() Pointer            { return v }
func (Pointer) Unpack(src Pointer) Pointer { return src }

// Capability markers on the kinds.

func (Int8) AtomLogic()    {}
func (Int16) AtomLogic()   {}
func (Int32) AtomLogic()   {}
func (Int64) AtomLogic()   {}
func (Uint8) AtomLogic()   {}
func (Uint16) AtomLogic()  {}
func (Uint32) AtomLogic()  {}
func (Uint64) AtomLogic()  {}
func (Uintptr) AtomLogic() {}
func (Bool) AtomLogic()    {}

func (Int8) AtomInteger()    {}
func (Int16) AtomInteger()   {}
func (Int32) AtomInteger()   {}
func (Int64) AtomInteger()   {}
func (Uint8) AtomInteger()   {}
func (Uint16) AtomInteger()  {}
func (Uint32) AtomInteger()  {}
func (Uint64) AtomInteger()  {}
func (Uintptr) AtomInteger() {}
