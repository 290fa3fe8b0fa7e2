package rvsdg

// Node is the sum type over the three node cases: Simple, Marker, and
// Compound. It is generic over the caller-supplied Simple payload type P.
//
// A Node never exposes its internal representation directly; callers
// inspect it through the Kind() tag and the Simple, EndParams, Owner and
// Compound accessors, or through the composed Parameters() list.
type Node[P any] struct {
	kind Kind

	// valid for kind == KindSimple
	simple P

	// valid for kind == KindMarkerEnd: the collected exit links, one per
	// region output.
	endParams []Link

	// valid for kind == KindMarkerStart: the number of values the region
	// receives from outside, fixed when the region is allocated (so it is
	// queryable before the region is claimed by an owning compound).
	startArity int

	// valid for kind.IsMarker(): the compound that owns this marker's
	// region, set once the region is claimed by AddCompound.
	owner Id

	// valid for kind.IsCompound(): the compound's own parameter list and
	// the region(s) it owns, in declaration order.
	params  []Link
	regions []Region
}

// Kind reports which of the node's cases is populated.
func (n Node[P]) Kind() Kind { return n.kind }

// Simple returns the payload and true if n is a Simple node.
func (n Node[P]) Simple() (P, bool) {
	if n.kind == KindSimple {
		return n.simple, true
	}
	var zero P
	return zero, false
}

// EndParams returns the End marker's collected exit links and true if n is
// a KindMarkerEnd node. The slice is owned by the Store; callers must not
// retain it across a mutation of n.
func (n Node[P]) EndParams() ([]Link, bool) {
	if n.kind == KindMarkerEnd {
		return n.endParams, true
	}
	return nil, false
}

// Owner returns the id of the compound that owns this marker's region, and
// true if n is a Start or End marker.
func (n Node[P]) Owner() (Id, bool) {
	if n.kind.IsMarker() {
		return n.owner, true
	}
	return Id{}, false
}

// CompoundView is a read-only projection of a compound node's parameter
// list and owned regions.
type CompoundView struct {
	Kind    Kind
	Params  []Link
	Regions []Region
}

// Compound returns a CompoundView and true if n is one of the four
// compound kinds.
func (n Node[P]) Compound() (CompoundView, bool) {
	if !n.kind.IsCompound() {
		return CompoundView{}, false
	}
	return CompoundView{Kind: n.kind, Params: n.params, Regions: n.regions}, true
}

// Parameters returns the node's parameter links in one uniform ordering:
// a Compound's own parameter vector, an End's collected exit links, or
// (for Simple) whatever the payload's Parameters/AsParameters capability
// reports. Start always reports no parameters. This is the producer-order
// list the visitor (traverse.Visitor) walks before emitting n.
func (n Node[P]) Parameters() []Link {
	switch n.kind {
	case KindMarkerStart:
		return nil
	case KindMarkerEnd:
		return n.endParams
	case KindGamma, KindTheta, KindLambda, KindPhi:
		return n.params
	default: // KindSimple
		return simpleParameters(n.simple)
	}
}

// simpleParameters forwards to the payload's AsParameters capability when
// present (zero-cost slice forwarding), falling back to the
// iterator-based Parameters capability, and finally to an empty list for
// payloads that expose neither.
func simpleParameters[P any](payload P) []Link {
	if ap, ok := any(payload).(AsParameters); ok {
		return ap.AsParameters()
	}
	if p, ok := any(payload).(Parameters); ok {
		out := make([]Link, 0, 4)
		for l := range p.Parameters() {
			out = append(out, *l)
		}
		return out
	}
	return nil
}
