// Package traverse implements the reverse-topological, region-aware
// visitor: the single traversal every analysis and rewrite in this
// module is built on.
package traverse

import (
	"iter"

	"github.com/bits-and-blooms/bitset"
	"github.com/lvlath/rvsdg"
)

// frame is one entry of the visitor's explicit work stack: a node whose
// children (parameter producers, then owned regions' Start/End pairs) are
// being expanded in order. An explicit stack is used instead of recursion
// because regions may nest arbitrarily deep and the native call stack
// would overflow on pathological inputs.
type frame struct {
	id       rvsdg.Id
	children []rvsdg.Id
	next     int
}

// Visitor drives repeated reverse-topological walks over a Store, reusing
// its work stack and seen bitset between calls rather than reallocating
// them.
type Visitor[P any] struct {
	seen  *bitset.BitSet
	stack []frame
}

// New returns a Visitor with empty, ready-to-use buffers.
func New[P any]() *Visitor[P] {
	return &Visitor[P]{seen: bitset.New(0)}
}

// Seen exposes the bitset of every Id reached since the last Reset, over
// Store.ActiveCount index space — the set sweep.Sweep retains. A bit is set
// when its node is first queued, so after a walk cut short by a break it
// also covers nodes that were queued but never emitted.
func (v *Visitor[P]) Seen() *bitset.BitSet { return v.seen }

// Reset clears the seen bitmap so the next Walk starts from a blank slate.
// Without calling Reset, successive Walk calls accumulate: a node emitted
// by an earlier call is not re-emitted by a later one, which is exactly
// what a caller wants when unioning reachability across several root sets.
func (v *Visitor[P]) Reset() {
	v.seen.ClearAll()
	v.stack = v.stack[:0]
}

// Walk returns an iterator over every node reachable from roots, ordered
// so that:
//
//  1. every producer referenced by a node's parameters is emitted before
//     it, in parameter order;
//  2. for a compound node, each owned region is emitted in declaration
//     order as Start, then every body node reachable from End's
//     predecessors, then End — all before the compound itself;
//  3. the node itself is emitted last.
//
// A root absent from store is skipped silently. Stopping the range loop
// early (a break) is how a caller cancels mid-walk; no buffers are leaked
// by doing so, since the stack is rebuilt fresh on the next Walk call.
func (v *Visitor[P]) Walk(store *rvsdg.Store[P], roots ...rvsdg.Id) iter.Seq[rvsdg.Id] {
	return func(yield func(rvsdg.Id) bool) {
		v.stack = v.stack[:0]
		rootIdx := 0

		pushNextRoot := func() bool {
			for rootIdx < len(roots) {
				r := roots[rootIdx]
				rootIdx++
				if v.tryEnqueue(store, r) {
					return true
				}
			}
			return false
		}

		for {
			if len(v.stack) == 0 {
				if !pushNextRoot() {
					return
				}
				continue
			}

			top := &v.stack[len(v.stack)-1]
			if top.next < len(top.children) {
				child := top.children[top.next]
				top.next++
				v.tryEnqueue(store, child)
				continue
			}

			id := top.id
			v.stack = v.stack[:len(v.stack)-1]
			if !yield(id) {
				return
			}
		}
	}
}

// tryEnqueue pushes a work frame for id and marks it seen, unless id is
// invalid, names a dead node, or was already seen — in which case it is
// skipped silently (roots absent from the store are skipped this way; an
// already-seen id is skipped because cycles are impossible by invariant
// but a defensive guard costs nothing).
func (v *Visitor[P]) tryEnqueue(store *rvsdg.Store[P], id rvsdg.Id) bool {
	if !id.Valid() {
		return false
	}
	idx := uint(id.Index())
	if v.seen.Test(idx) {
		return false
	}
	n, ok := store.Get(id)
	if !ok {
		return false
	}
	v.seen.Set(idx)
	v.stack = append(v.stack, frame{id: id, children: expand(n)})
	return true
}

// expand lists, in order, every node that must be emitted before n: its
// parameter producers, then (for a compound) each owned region's Start
// followed by End. End's own parameters are its collected exit links, so
// recursing into End via the same rule already walks the region's body
// before End is emitted — no special-casing is needed for "body nodes
// reachable from End's predecessors".
func expand[P any](n rvsdg.Node[P]) []rvsdg.Id {
	params := n.Parameters()
	out := make([]rvsdg.Id, 0, len(params)+4)
	for _, l := range params {
		out = append(out, l.Node)
	}
	if cv, ok := n.Compound(); ok {
		for _, r := range cv.Regions {
			out = append(out, r.Start, r.End)
		}
	}
	return out
}
