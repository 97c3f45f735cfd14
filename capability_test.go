package atomkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchAnd(t *testing.T) {
	a := New[Uint8, Uint8](0b101101)

	prev := FetchAnd(a, Uint8(0b110011), SeqCst)
	assert.Equal(t, Uint8(0b101101), prev)
	assert.Equal(t, Uint8(0b100001), a.Load(SeqCst))
}

func TestFetchOrXor(t *testing.T) {
	a := New[Uint16, Uint16](0b0011)

	prev := FetchOr(a, Uint16(0b0110), Relaxed)
	assert.Equal(t, Uint16(0b0011), prev)
	assert.Equal(t, Uint16(0b0111), a.Load(SeqCst))

	prev = FetchXor(a, Uint16(0b0101), Relaxed)
	assert.Equal(t, Uint16(0b0111), prev)
	assert.Equal(t, Uint16(0b0010), a.Load(SeqCst))
}

func TestFetchNandSubWordStaysInWidth(t *testing.T) {
	// NAND sets every bit the operands do not share, so a sub-word kind
	// exercises the zero-high-bits invariant hardest.
	a := New[Uint8, Uint8](0x13)

	prev := FetchNand(a, Uint8(0x31), SeqCst)
	assert.Equal(t, Uint8(0x13), prev)
	assert.Equal(t, Uint8(^uint8(0x13&0x31)), a.Load(SeqCst))

	// Later ops still see a clean 8-bit value.
	assert.Equal(t, a.Load(SeqCst), a.Swap(0, SeqCst))
}

func TestFetchNand64(t *testing.T) {
	a := New[Uint64, Uint64](0x0f)

	prev := FetchNand(a, Uint64(0xff), SeqCst)
	assert.Equal(t, Uint64(0x0f), prev)
	assert.Equal(t, ^Uint64(0x0f), a.Load(SeqCst))
}

func TestBoolLogicIsLogical(t *testing.T) {
	a := New[Bool, Bool](true)

	// NAND of two true values is false, never an out-of-domain byte.
	prev := FetchNand(a, Bool(true), SeqCst)
	assert.Equal(t, Bool(true), prev)
	assert.Equal(t, Bool(false), a.Load(SeqCst))

	prev = FetchNand(a, Bool(true), SeqCst)
	assert.Equal(t, Bool(false), prev)
	assert.Equal(t, Bool(true), a.Load(SeqCst))

	prev = FetchOr(a, Bool(false), SeqCst)
	assert.Equal(t, Bool(true), prev)
	assert.Equal(t, Bool(true), a.Load(SeqCst))

	prev = FetchAnd(a, Bool(false), SeqCst)
	assert.Equal(t, Bool(true), prev)
	assert.Equal(t, Bool(false), a.Load(SeqCst))

	prev = FetchXor(a, Bool(true), SeqCst)
	assert.Equal(t, Bool(false), prev)
	assert.Equal(t, Bool(true), a.Load(SeqCst))
}

func TestFetchAddWrapsAtWidth(t *testing.T) {
	a := New[Uint8, Uint8](0xff)

	prev := FetchAdd(a, Uint8(10), SeqCst)
	assert.Equal(t, Uint8(0xff), prev)
	assert.Equal(t, Uint8(9), a.Load(SeqCst))
}

func TestFetchSubWrapsAtWidth(t *testing.T) {
	a := New[Uint16, Uint16](3)

	prev := FetchSub(a, Uint16(5), SeqCst)
	assert.Equal(t, Uint16(3), prev)
	assert.Equal(t, Uint16(0xfffe), a.Load(SeqCst))
}

func TestFetchAddSignedWrap(t *testing.T) {
	a := New[Int8, Int8](127)

	prev := FetchAdd(a, Int8(1), SeqCst)
	assert.Equal(t, Int8(127), prev)
	assert.Equal(t, Int8(-128), a.Load(SeqCst))

	prev = FetchSub(a, Int8(1), SeqCst)
	assert.Equal(t, Int8(-128), prev)
	assert.Equal(t, Int8(127), a.Load(SeqCst))
}

func TestFetchAdd64(t *testing.T) {
	a := New[Int64, Int64](-5)

	prev := FetchAdd(a, Int64(12), Relaxed)
	assert.Equal(t, Int64(-5), prev)
	assert.Equal(t, Int64(7), a.Load(SeqCst))
}

func TestFetchMaxMinSigned(t *testing.T) {
	// Comparison is on the kind's value, so negatives order correctly
	// despite the masked in-cell form.
	a := New[Int16, Int16](-100)

	prev := FetchMax(a, Int16(-50), SeqCst)
	assert.Equal(t, Int16(-100), prev)
	assert.Equal(t, Int16(-50), a.Load(SeqCst))

	prev = FetchMax(a, Int16(-200), SeqCst)
	assert.Equal(t, Int16(-50), prev)
	assert.Equal(t, Int16(-50), a.Load(SeqCst))

	prev = FetchMin(a, Int16(-200), SeqCst)
	assert.Equal(t, Int16(-50), prev)
	assert.Equal(t, Int16(-200), a.Load(SeqCst))

	prev = FetchMin(a, Int16(0), SeqCst)
	assert.Equal(t, Int16(-200), prev)
	assert.Equal(t, Int16(-200), a.Load(SeqCst))
}

func TestFetchMaxMinUnsigned(t *testing.T) {
	a := New[Uint64, Uint64](10)

	assert.Equal(t, Uint64(10), FetchMax(a, Uint64(1<<40), SeqCst))
	assert.Equal(t, Uint64(1<<40), a.Load(SeqCst))

	assert.Equal(t, Uint64(1<<40), FetchMin(a, Uint64(3), SeqCst))
	assert.Equal(t, Uint64(3), a.Load(SeqCst))
}

func TestUintptrInteger(t *testing.T) {
	a := New[Uintptr, Uintptr](0x1000)

	prev := FetchAdd(a, Uintptr(0x10), SeqCst)
	assert.Equal(t, Uintptr(0x1000), prev)
	assert.Equal(t, Uintptr(0x1010), a.Load(SeqCst))

	prev = FetchAnd(a, Uintptr(0xff0), SeqCst)
	assert.Equal(t, Uintptr(0x1010), prev)
	assert.Equal(t, Uintptr(0x010), a.Load(SeqCst))
}
