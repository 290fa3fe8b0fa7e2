// Sentinel errors for the rvsdg package: sentinels are never wrapped with
// formatted strings at the definition site; call sites attach context with
// %w and callers branch on identity with errors.Is.
package rvsdg

import "errors"

var (
	// ErrDeadKey indicates an Id refers to a slot whose generation no
	// longer matches the slot's current occupant (the node was removed,
	// possibly replaced by a later insertion into the same slot).
	ErrDeadKey = errors.New("rvsdg: dead key")

	// ErrArityMismatch indicates a Gamma's branches have mismatched End
	// arities, or a Link names a port beyond its producer's declared
	// output arity.
	ErrArityMismatch = errors.New("rvsdg: arity mismatch")

	// ErrCapacityExhausted indicates the 32-bit slot index space has
	// been exhausted.
	ErrCapacityExhausted = errors.New("rvsdg: identifier space exhausted")

	// ErrRegionOwned indicates an attempt to hand a Region that is
	// already owned by a compound to a second compound.
	ErrRegionOwned = errors.New("rvsdg: region already owned")

	// ErrWrongRegionCount indicates AddCompound was called with a
	// number of regions inconsistent with its Kind (Gamma needs >= 2
	// caller-supplied regions; the others take none, since the Store
	// allocates their single region itself).
	ErrWrongRegionCount = errors.New("rvsdg: wrong region count for kind")

	// ErrNotCompound indicates AddCompound was given a Kind that is not
	// one of the four compound kinds.
	ErrNotCompound = errors.New("rvsdg: node is not a compound")

	// ErrNotEndMarker indicates SetEndParams (or another End-specific
	// operation) was given an Id that does not name a live KindMarkerEnd
	// node.
	ErrNotEndMarker = errors.New("rvsdg: node is not an End marker")
)

// DeadKeyPanic is the panic value raised by the infallible Must* accessors
// on a dead key, letting a caller that wants checked-error behavior at a
// test boundary recover() it rather than crash.
type DeadKeyPanic struct{ Id Id }

func (p DeadKeyPanic) Error() string {
	return "rvsdg: dead key " + p.Id.String()
}
