package rvsdg

import (
	"fmt"
	"io"
	"iter"
)

// Parameters is implemented by a Simple payload that stores its parameter
// links somewhere other than a single contiguous slice (or that wants to
// compute them on demand). Parameters() must be finite and restartable:
// each call produces a fresh sequence over the same, unchanged set of
// links.
type Parameters interface {
	Parameters() iter.Seq[*Link]
}

// ParametersMut is the mutable counterpart of Parameters, yielding each
// parameter's index alongside a pointer the caller may overwrite in place
// — the mechanism rewrite.RedoPorts uses to retarget a payload's inputs
// without knowing the payload's internal layout.
type ParametersMut interface {
	ParametersMut() iter.Seq2[int, *Link]
}

// AsParameters lets a payload that already stores its parameters as one
// contiguous slice forward it directly, at zero cost, instead of paying
// for an iterator. Node.Parameters prefers this capability over Parameters
// when both are implemented.
type AsParameters interface {
	AsParameters() []Link
}

// AsParametersMut is the mutable, slice-returning counterpart of
// AsParameters.
type AsParametersMut interface {
	AsParametersMut() []Link
}

// Description lets a Simple payload supply human-readable labels for
// itself and its ports. It is consumed by an external visualizer (out of
// this module's scope); the module only declares the contract.
//
// Each method may fail only because the sink failed; such an error is
// returned unwrapped to the caller.
type Description interface {
	WriteContent(w io.Writer) error
	WritePortIn(w io.Writer, port Port) error
	WritePortOut(w io.Writer, port Port) error
}

// DefaultPortLabel writes the 1-based index of port to w, the fallback a
// Description implementation may delegate to for ports it has no special
// label for.
func DefaultPortLabel(w io.Writer, port Port) error {
	_, err := fmt.Fprintf(w, "%d", int(port)+1)
	return err
}
