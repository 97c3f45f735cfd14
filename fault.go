package atomkit

import (
	"errors"
	"fmt"
)

// FaultCode categorizes representation faults.
type FaultCode string

const (
	// FaultInvalidDiscriminant: an enum Unpack received a bit pattern
	// matching no declared variant.
	FaultInvalidDiscriminant FaultCode = "INVALID_DISCRIMINANT"

	// FaultInvalidNullEncoding: a non-nil pointer atom received the nil
	// encoding.
	FaultInvalidNullEncoding FaultCode = "INVALID_NULL_ENCODING"

	// FaultExcludedZeroValue: a non-zero integer atom received zero.
	FaultExcludedZeroValue FaultCode = "EXCLUDED_ZERO_VALUE"

	// FaultInvalidScalarEncoding: a scalar atom received an encoding
	// outside its valid range (for example a surrogate codepoint).
	FaultInvalidScalarEncoding FaultCode = "INVALID_SCALAR_ENCODING"
)

// Fault is a representation fault: Unpack was handed a bit pattern that
// cannot arise from any valid value of the type. It is raised by panic,
// never returned. Coercing the bits to a default instead would leave the
// container holding a lie and corrupt every later read, so the faulting
// operation's caller is aborted immediately.
//
// Faults are only reachable when a capability operation drives the
// representation outside the type's domain, or when Unpack is called
// directly with an externally supplied value.
type Fault struct {
	// Code identifies the fault category.
	Code FaultCode

	// Type is the Go type whose Unpack faulted.
	Type string

	// Bits is the offending bit pattern, zero-extended.
	Bits uint64

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s (type=%s, bits=0x%x)", f.Code, f.Message, f.Type, f.Bits)
}

// IsFault reports whether err (or a panic value recovered as error) is a
// Fault with the given code. Uses errors.As to handle wrapped errors.
func IsFault(err error, code FaultCode) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Code == code
	}
	return false
}
