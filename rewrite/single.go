package rewrite

import "github.com/lvlath/rvsdg"

// Single is a higher-order combinator: given a rule that, from a node,
// yields an optional match witness, and a stitch that turns that witness
// into a replacement node, Single produces an operator that replaces the
// matched node in place and returns the node that was there before.
//
// The resulting operator reports (zero, false) when rule finds no match,
// leaving the store untouched.
func Single[P any, W any](
	rule func(*rvsdg.Store[P], rvsdg.Id) (W, bool),
	stitch func(*rvsdg.Store[P], rvsdg.Id, W) rvsdg.Node[P],
) func(*rvsdg.Store[P], rvsdg.Id) (rvsdg.Node[P], bool) {
	return func(store *rvsdg.Store[P], id rvsdg.Id) (rvsdg.Node[P], bool) {
		w, ok := rule(store, id)
		if !ok {
			var zero rvsdg.Node[P]
			return zero, false
		}
		return store.Replace(id, stitch(store, id, w))
	}
}
