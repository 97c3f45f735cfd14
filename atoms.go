package atomkit

import (
	"fmt"
	"math"
	"unicode/utf8"
	"unsafe"
)

// Built-in representable types for the primitives that have no native
// atomic cell of their own.

// Float32 is an atom over float32, represented by the IEEE-754 bit
// pattern. It carries no capability markers: integer arithmetic on float
// bits is meaningless, and bitwise combination rarely is.
type Float32 float32

func (v Float32) Pack() Uint32 {
	return Uint32(math.Float32bits(float32(v)))
}

func (Float32) Unpack(src Uint32) Float32 {
	return Float32(math.Float32frombits(uint32(src)))
}

// Float64 is an atom over float64, represented by the IEEE-754 bit
// pattern.
type Float64 float64

func (v Float64) Pack() Uint64 {
	return Uint64(math.Float64bits(float64(v)))
}

func (Float64) Unpack(src Uint64) Float64 {
	return Float64(math.Float64frombits(uint64(src)))
}

// Rune is an atom over rune. Unpack faults on encodings that are not valid
// Unicode scalar values (surrogates, out-of-range codepoints).
type Rune rune

func (v Rune) Pack() Uint32 {
	return Uint32(v)
}

func (Rune) Unpack(src Uint32) Rune {
	r := rune(src)
	if !utf8.ValidRune(r) {
		panic(&Fault{
			Code:    FaultInvalidScalarEncoding,
			Type:    "atomkit.Rune",
			Bits:    uint64(src),
			Message: fmt.Sprintf("%#x is not a valid Unicode scalar value", uint32(src)),
		})
	}
	return Rune(r)
}

// The NonZero atoms exclude zero from their domain. They carry no
// capability markers, so no atomic operation can drive them to zero;
// Unpack faults if a zero encoding arrives anyway.

// NonZeroUint32 is a uint32 atom whose value must never be zero.
type NonZeroUint32 uint32

func (v NonZeroUint32) Pack() Uint32 {
	return Uint32(v)
}

func (NonZeroUint32) Unpack(src Uint32) NonZeroUint32 {
	if src == 0 {
		panic(zeroFault("atomkit.NonZeroUint32"))
	}
	return NonZeroUint32(src)
}

// NonZeroUint64 is a uint64 atom whose value must never be zero.
type NonZeroUint64 uint64

func (v NonZeroUint64) Pack() Uint64 {
	return Uint64(v)
}

func (NonZeroUint64) Unpack(src Uint64) NonZeroUint64 {
	if src == 0 {
		panic(zeroFault("atomkit.NonZeroUint64"))
	}
	return NonZeroUint64(src)
}

// NonZeroInt32 is an int32 atom whose value must never be zero.
type NonZeroInt32 int32

func (v NonZeroInt32) Pack() Int32 {
	return Int32(v)
}

func (NonZeroInt32) Unpack(src Int32) NonZeroInt32 {
	if src == 0 {
		panic(zeroFault("atomkit.NonZeroInt32"))
	}
	return NonZeroInt32(src)
}

// NonZeroInt64 is an int64 atom whose value must never be zero.
type NonZeroInt64 int64

func (v NonZeroInt64) Pack() Int64 {
	return Int64(v)
}

func (NonZeroInt64) Unpack(src Int64) NonZeroInt64 {
	if src == 0 {
		panic(zeroFault("atomkit.NonZeroInt64"))
	}
	return NonZeroInt64(src)
}

func zeroFault(typ string) *Fault {
	return &Fault{
		Code:    FaultExcludedZeroValue,
		Type:    typ,
		Bits:    0,
		Message: "zero is excluded from the type's domain",
	}
}

// NonNil is a pointer atom whose value must never be nil. It uses the
// nullable Pointer representation; Unpack faults on the nil encoding.
type NonNil struct {
	p unsafe.Pointer
}

// MakeNonNil wraps p, panicking with a Fault if p is nil.
func MakeNonNil(p unsafe.Pointer) NonNil {
	if p == nil {
		panic(nilFault())
	}
	return NonNil{p: p}
}

// UnsafePointer returns the wrapped pointer, always non-nil.
func (v NonNil) UnsafePointer() unsafe.Pointer {
	return v.p
}

func (v NonNil) Pack() Pointer {
	return Pointer{p: v.p}
}

func (NonNil) Unpack(src Pointer) NonNil {
	if src.p == nil {
		panic(nilFault())
	}
	return NonNil{p: src.p}
}

func nilFault() *Fault {
	return &Fault{
		Code:    FaultInvalidNullEncoding,
		Type:    "atomkit.NonNil",
		Bits:    0,
		Message: "nil is excluded from the type's domain",
	}
}
