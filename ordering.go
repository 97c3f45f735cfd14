package atomkit

import "fmt"

// Ordering is the memory-visibility contract attached to an atomic
// operation. The accepted set per operation mirrors the underlying
// hardware primitives: pure loads reject Release/AcqRel, pure stores
// reject Acquire/AcqRel, and compare-exchange failure orderings reject
// Release/AcqRel.
//
// The Go runtime executes every atomic operation with sequentially
// consistent semantics. A weaker requested ordering is an upper bound the
// implementation is free to exceed; the acceptance rules above are still
// enforced so that ordering bugs surface on every platform.
type Ordering uint8

const (
	// Relaxed imposes no ordering beyond the atomicity of the operation.
	Relaxed Ordering = iota

	// Acquire makes later reads and writes observe the store this load
	// synchronizes with.
	Acquire

	// Release publishes earlier reads and writes to loads that acquire
	// this store.
	Release

	// AcqRel combines Acquire and Release for read-modify-write ops.
	AcqRel

	// SeqCst adds a single total order over all SeqCst operations.
	SeqCst
)

// String returns the ordering's name.
func (o Ordering) String() string {
	switch o {
	case Relaxed:
		return "Relaxed"
	case Acquire:
		return "Acquire"
	case Release:
		return "Release"
	case AcqRel:
		return "AcqRel"
	case SeqCst:
		return "SeqCst"
	default:
		return fmt.Sprintf("Ordering(%d)", uint8(o))
	}
}

func checkLoadOrder(o Ordering) {
	if o == Release || o == AcqRel {
		panic("atomkit: " + o.String() + " is not a valid load ordering")
	}
	checkKnown(o)
}

func checkStoreOrder(o Ordering) {
	if o == Acquire || o == AcqRel {
		panic("atomkit: " + o.String() + " is not a valid store ordering")
	}
	checkKnown(o)
}

func checkRMWOrder(o Ordering) {
	checkKnown(o)
}

// checkCASOrders validates the success/failure pair of a compare-exchange
// or fetch-update. The failure path is a pure load, so it follows the load
// rules. Both orderings are respected independently.
func checkCASOrders(success, failure Ordering) {
	checkKnown(success)
	if failure == Release || failure == AcqRel {
		panic("atomkit: " + failure.String() + " is not a valid failure ordering")
	}
	checkKnown(failure)
}

func checkKnown(o Ordering) {
	if o > SeqCst {
		panic("atomkit: unknown ordering " + o.String())
	}
}
