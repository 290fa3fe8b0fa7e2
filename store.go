package rvsdg

import (
	"iter"
	"math"
)

// slot is one arena cell: a live node plus the generation counter that
// invalidates any Id captured before the slot was last reused.
type slot[P any] struct {
	gen  uint32
	live bool
	node Node[P]
}

// Store is the node arena: a versioned, slot-indexed collection of
// Nodes plus the region-ownership bookkeeping that binds a Compound to its
// owned Region(s). A Store has no internal locking — callers serialize
// access themselves.
type Store[P any] struct {
	slots []slot[P]
	free  []uint32 // stack of reusable slot indices
}

// maxSlotIndex caps the arena so every index stays representable in Id's
// 32-bit index field. A var rather than a const so a capacity test can
// shrink it instead of actually growing the arena to four billion slots.
var maxSlotIndex = math.MaxUint32 - 1

// NewStore creates an empty Store.
func NewStore[P any]() *Store[P] {
	return &Store[P]{}
}

// alloc reserves a slot (reusing a freed one when available), bumps its
// generation, and returns the fresh Id together with the slot index for
// the caller to populate.
func (s *Store[P]) alloc() (Id, uint32, error) {
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		sl := &s.slots[idx]
		sl.gen++
		sl.live = true
		return Id{index: idx, gen: sl.gen}, idx, nil
	}
	if len(s.slots) > maxSlotIndex {
		return Id{}, 0, ErrCapacityExhausted
	}
	idx := uint32(len(s.slots))
	s.slots = append(s.slots, slot[P]{gen: 1, live: true})
	return Id{index: idx, gen: 1}, idx, nil
}

// isLive reports whether id currently names an occupied slot whose
// generation matches.
func (s *Store[P]) isLive(id Id) bool {
	if !id.Valid() || int(id.index) >= len(s.slots) {
		return false
	}
	sl := &s.slots[id.index]
	return sl.live && sl.gen == id.gen
}

// Get returns the node named by id and true, or the zero Node and false if
// id is dead (a removed or never-allocated slot, or a stale generation).
func (s *Store[P]) Get(id Id) (Node[P], bool) {
	if !s.isLive(id) {
		var zero Node[P]
		return zero, false
	}
	return s.slots[id.index].node, true
}

// MustGet is the infallible counterpart of Get: it panics with a
// DeadKeyPanic on a dead key rather than returning a zero value, for call
// sites that have already established liveness is a program invariant.
func (s *Store[P]) MustGet(id Id) Node[P] {
	n, ok := s.Get(id)
	if !ok {
		panic(DeadKeyPanic{Id: id})
	}
	return n
}

// GetMut returns a pointer into the live arena slot for id, letting a
// caller mutate the node's parameter links in place (the mechanism
// rewrite.RedoPorts uses). The pointer is invalidated by any subsequent
// insertion that grows the arena; callers must not retain it across one.
func (s *Store[P]) GetMut(id Id) (*Node[P], bool) {
	if !s.isLive(id) {
		return nil, false
	}
	return &s.slots[id.index].node, true
}

// Kind reports the Kind of the live node named by id.
func (s *Store[P]) Kind(id Id) (Kind, bool) {
	n, ok := s.Get(id)
	if !ok {
		return 0, false
	}
	return n.kind, true
}

// Compound returns a read-only view of the compound node named by id.
func (s *Store[P]) Compound(id Id) (CompoundView, bool) {
	n, ok := s.Get(id)
	if !ok {
		return CompoundView{}, false
	}
	return n.Compound()
}

// InsertSimple allocates a new Simple node wrapping payload and returns its
// fresh key.
func (s *Store[P]) InsertSimple(payload P) (Id, error) {
	id, idx, err := s.alloc()
	if err != nil {
		return Id{}, err
	}
	s.slots[idx].node = Node[P]{kind: KindSimple, simple: payload}
	return id, nil
}

// AddRegion allocates a fresh Start/End marker pair and returns their
// Region. arity fixes the number of values the region receives from
// outside — the output arity Start reports from the moment it is
// created, independent of when (or whether) a compound later claims the
// region as owner. The pair is unowned until it is handed to AddCompound
// (for Gamma) — an unowned region's markers report an invalid Owner.
func (s *Store[P]) AddRegion(arity int) (Region, error) {
	start, startIdx, err := s.alloc()
	if err != nil {
		return Region{}, err
	}
	end, endIdx, err := s.alloc()
	if err != nil {
		s.free = append(s.free, startIdx)
		s.slots[startIdx].live = false
		return Region{}, err
	}
	s.slots[startIdx].node = Node[P]{kind: KindMarkerStart, startArity: arity}
	s.slots[endIdx].node = Node[P]{kind: KindMarkerEnd}
	return Region{Start: start, End: end}, nil
}

// regionOwned reports whether r's Start marker is already bound to an
// owning compound.
func (s *Store[P]) regionOwned(r Region) bool {
	n, ok := s.Get(r.Start)
	if !ok {
		return false
	}
	owner, _ := n.Owner()
	return owner.Valid()
}

// OutArity reports the number of output ports the node named by id
// declares:
//
//   - Simple: the payload's OutArity() if it implements
//     interface{ OutArity() int }, else 1 (a single default output).
//   - Start: the arity fixed when its region was allocated (the values
//     the region receives from outside).
//   - End: 0 (End consumes; it never produces).
//   - Gamma: the uniform End arity of its branches.
//   - Theta: its parameter count minus one (the continuation predicate is
//     not observable from outside the loop).
//   - Lambda: 1 (the function value).
//   - Phi: its parameter count (one slot per recursive binding).
func (s *Store[P]) OutArity(id Id) (int, bool) {
	n, ok := s.Get(id)
	if !ok {
		return 0, false
	}
	switch n.kind {
	case KindSimple:
		if oa, ok := any(n.simple).(interface{ OutArity() int }); ok {
			return oa.OutArity(), true
		}
		return 1, true
	case KindMarkerStart:
		return n.startArity, true
	case KindMarkerEnd:
		return 0, true
	case KindGamma:
		if len(n.regions) == 0 {
			return 0, true
		}
		end, ok := s.Get(n.regions[0].End)
		if !ok {
			return 0, false
		}
		return len(end.endParams), true
	case KindTheta:
		if len(n.params) == 0 {
			return 0, true
		}
		return len(n.params) - 1, true
	case KindLambda:
		return 1, true
	case KindPhi:
		return len(n.params), true
	default:
		return 0, true
	}
}

// validateLinks checks that every link is well-formed: the producer must
// be live and the port must be within its declared output arity.
func (s *Store[P]) validateLinks(links []Link) error {
	for _, l := range links {
		if !s.isLive(l.Node) {
			return ErrDeadKey
		}
		arity, _ := s.OutArity(l.Node)
		if int(l.Port) >= arity {
			return ErrArityMismatch
		}
	}
	return nil
}

// AddCompound allocates a compound node of the given kind with the given
// external parameters.
//
// For KindGamma, the caller supplies two or more already-allocated,
// unowned Region values (built via AddRegion(len(params)), with each
// branch's End already populated via SetEndParams) — all must report the
// same End arity. For the other three kinds, regions must be omitted:
// the Store allocates a single fresh Region itself, which the caller then
// populates (its Start is usable as a parameter producer immediately; its
// End is populated afterward via SetEndParams once the region's body is
// built).
//
// The graph is left unmodified if any validation fails.
func (s *Store[P]) AddCompound(kind Kind, params []Link, regions ...Region) (Id, []Region, error) {
	if !kind.IsCompound() {
		return Id{}, nil, ErrNotCompound
	}
	if err := s.validateLinks(params); err != nil {
		return Id{}, nil, err
	}

	var resolved []Region
	if kind == KindGamma {
		if len(regions) < kind.MinRegions() {
			return Id{}, nil, ErrWrongRegionCount
		}
		arity := -1
		for _, r := range regions {
			if s.regionOwned(r) {
				return Id{}, nil, ErrRegionOwned
			}
			end, ok := s.Get(r.End)
			if !ok || end.kind != KindMarkerEnd {
				return Id{}, nil, ErrNotEndMarker
			}
			if arity == -1 {
				arity = len(end.endParams)
			} else if len(end.endParams) != arity {
				return Id{}, nil, ErrArityMismatch
			}
		}
		resolved = append([]Region(nil), regions...)
	} else {
		if len(regions) != 0 {
			return Id{}, nil, ErrWrongRegionCount
		}
		r, err := s.AddRegion(len(params))
		if err != nil {
			return Id{}, nil, err
		}
		resolved = []Region{r}
	}

	id, idx, err := s.alloc()
	if err != nil {
		return Id{}, nil, err
	}
	s.slots[idx].node = Node[P]{kind: kind, params: params, regions: resolved}

	for _, r := range resolved {
		s.setOwner(r.Start, id)
		s.setOwner(r.End, id)
	}

	return id, resolved, nil
}

func (s *Store[P]) setOwner(markerId Id, owner Id) {
	sl := &s.slots[markerId.index]
	sl.node.owner = owner
}

// SetEndParams populates the collected exit links of an End marker — the
// region's output values — once its region's body has been built. endId
// must name a live KindMarkerEnd node.
func (s *Store[P]) SetEndParams(endId Id, links []Link) error {
	if !s.isLive(endId) {
		return ErrDeadKey
	}
	sl := &s.slots[endId.index]
	if sl.node.kind != KindMarkerEnd {
		return ErrNotEndMarker
	}
	if err := s.validateLinks(links); err != nil {
		return err
	}
	sl.node.endParams = links
	return nil
}

// Remove deletes the node named by id. If id is a live compound, its
// owned regions' Start/End markers are removed too, though nodes inside
// those regions are left in place (that is sweep's job, not Remove's).
// Removal is idempotent: removing an already-dead key returns
// (zero, false) rather than erroring.
func (s *Store[P]) Remove(id Id) (Node[P], bool) {
	if !s.isLive(id) {
		var zero Node[P]
		return zero, false
	}
	n := s.slots[id.index].node
	s.free1(id.index)
	if n.kind.IsCompound() {
		for _, r := range n.regions {
			s.free1(r.Start.index)
			s.free1(r.End.index)
		}
	}
	return n, true
}

func (s *Store[P]) free1(idx uint32) {
	sl := &s.slots[idx]
	if !sl.live {
		return
	}
	sl.live = false
	var zero Node[P]
	sl.node = zero
	s.free = append(s.free, idx)
}

// Keys yields every live Id. Iteration order is slot-index ascending,
// which is unspecified-but-stable for the lifetime of the returned
// sequence.
func (s *Store[P]) Keys() iter.Seq[Id] {
	return func(yield func(Id) bool) {
		for idx := range s.slots {
			sl := &s.slots[idx]
			if !sl.live {
				continue
			}
			if !yield(Id{index: uint32(idx), gen: sl.gen}) {
				return
			}
		}
	}
}

// ActiveCount returns one past the largest index ever allocated — a
// high-water mark for sizing parallel vectors (e.g. a successors.Index or
// a traverse Visitor's seen bitset), not a live-node count: it need not
// shrink when nodes are removed.
func (s *Store[P]) ActiveCount() int { return len(s.slots) }

// Clear drops every node. Capacity is retained.
func (s *Store[P]) Clear() {
	s.slots = s.slots[:0]
	s.free = s.free[:0]
}

// RewriteParameters applies rewrite to every parameter link of the live
// node named by id, replacing each link for which rewrite reports a match,
// and returns how many were replaced. It is the mutation primitive
// rewrite.RedoPorts is built on: rather than addressing a parameter by
// position, it matches on link *content* (typically "does this link read from the node
// being redirected"), since a node may read the same producer at more than
// one position, or not know in advance which position it lives at.
func (s *Store[P]) RewriteParameters(id Id, rewrite func(Link) (Link, bool)) int {
	n, ok := s.GetMut(id)
	if !ok {
		return 0
	}
	count := 0
	apply := func(l *Link) {
		if nl, match := rewrite(*l); match {
			*l = nl
			count++
		}
	}
	switch n.kind {
	case KindMarkerEnd:
		for i := range n.endParams {
			apply(&n.endParams[i])
		}
	case KindGamma, KindTheta, KindLambda, KindPhi:
		for i := range n.params {
			apply(&n.params[i])
		}
	case KindSimple:
		if pm, ok := any(n.simple).(ParametersMut); ok {
			for _, l := range pm.ParametersMut() {
				apply(l)
			}
		} else if ap, ok := any(n.simple).(AsParametersMut); ok {
			sl := ap.AsParametersMut()
			for i := range sl {
				apply(&sl[i])
			}
		}
	}
	return count
}

// Replace swaps the entire node stored at id for n, keeping id itself
// (and therefore every existing Link naming it) valid, and returns the
// node that was there before. It is the primitive rewrite.Single uses to
// apply a rule+stitch rewrite; Replace does not check that n's out-arity
// matches the node it supersedes — that is the stitch function's
// obligation, not Replace's.
func (s *Store[P]) Replace(id Id, n Node[P]) (Node[P], bool) {
	sl, ok := s.GetMut(id)
	if !ok {
		var zero Node[P]
		return zero, false
	}
	old := *sl
	*sl = n
	return old, true
}
