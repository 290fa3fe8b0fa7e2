package rvsdg

import "fmt"

// Id is a stable, opaque key for a node living in a Store. It is a slot
// index paired with a generation counter: the counter is bumped every time
// a slot is reused, so a key captured before a remove can never alias a
// different node allocated into the same slot afterward. The zero Id is
// never returned by a live insertion and is always invalid.
//
// Id is comparable, ordered by (index, generation), and safe to use as a
// map key.
type Id struct {
	index uint32
	gen   uint32
}

// Valid reports whether id could ever have been returned by a live
// insertion. It does not check liveness against any particular Store — a
// valid-shaped Id can still be dead (see Store.Get).
func (id Id) Valid() bool { return id.gen != 0 }

// Index exposes the raw slot index, chiefly for building parallel arrays
// sized by Store.ActiveCount (one past the largest index ever allocated).
func (id Id) Index() uint32 { return id.index }

// Less orders ids first by slot index, then by generation, giving a total
// order over Id suitable for deterministic sorting in tests and in any
// caller-side stable output.
func (id Id) Less(other Id) bool {
	if id.index != other.index {
		return id.index < other.index
	}
	return id.gen < other.gen
}

func (id Id) String() string {
	if !id.Valid() {
		return "Id(invalid)"
	}
	return fmt.Sprintf("Id(%d#%d)", id.index, id.gen)
}

// Port discriminates multiple inputs/outputs of a single node. Port 0 is
// the default output/input of any node that only ever produces or consumes
// one value.
type Port uint16

// Link names one endpoint of an edge: the producing Node and the Port of
// that node the value comes from.
type Link struct {
	Node Id
	Port Port
}

// Region is a pair of marker identifiers bracketing a nested subgraph.
// Start supplies the region's inputs as its outputs; End collects the
// region's outputs as its inputs. A Region is owned by exactly one
// Compound and is never shared.
type Region struct {
	Start Id
	End   Id
}

// Kind discriminates the three Node cases (Simple, Marker, Compound) and,
// for Marker and Compound, the specific sub-case.
type Kind int

const (
	// KindSimple nodes wrap an opaque caller-supplied payload.
	KindSimple Kind = iota
	// KindMarkerStart nodes open a Region: no inputs, one output per
	// region-entry value.
	KindMarkerStart
	// KindMarkerEnd nodes close a Region: one input per region-exit
	// value, no outputs.
	KindMarkerEnd
	// KindGamma is selection: two or more regions (the branches), whose
	// End arities must all agree; the last parameter is the selector.
	KindGamma
	// KindTheta is a tail-controlled loop: exactly one region, whose
	// End's last input is the continuation predicate.
	KindTheta
	// KindLambda is function abstraction: exactly one region; its single
	// output is the function value.
	KindLambda
	// KindPhi is a mutual-recursion group: exactly one region.
	KindPhi
)

// String renders the Kind's name, e.g. for test failure messages.
func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "Simple"
	case KindMarkerStart:
		return "Start"
	case KindMarkerEnd:
		return "End"
	case KindGamma:
		return "Gamma"
	case KindTheta:
		return "Theta"
	case KindLambda:
		return "Lambda"
	case KindPhi:
		return "Phi"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsCompound reports whether k is one of the four compound kinds.
func (k Kind) IsCompound() bool {
	switch k {
	case KindGamma, KindTheta, KindLambda, KindPhi:
		return true
	default:
		return false
	}
}

// IsMarker reports whether k is Start or End.
func (k Kind) IsMarker() bool {
	return k == KindMarkerStart || k == KindMarkerEnd
}

// MinRegions returns the minimum number of regions a compound of kind k
// must own. Gamma requires at least two branches; the others own exactly
// one region.
func (k Kind) MinRegions() int {
	if k == KindGamma {
		return 2
	}
	return 1
}
