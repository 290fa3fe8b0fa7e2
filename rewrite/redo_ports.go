// Package rewrite implements the port-level rewrite primitives:
// redirecting a node's successors to read from somewhere else, and
// replacing a node in place via a rule+stitch combinator.
package rewrite

import (
	"github.com/lvlath/rvsdg"
	"github.com/lvlath/rvsdg/successors"
)

// RedoPorts redirects, for every successor of from, each parameter link
// that reads from an output port of from for which f reports a
// replacement. It returns how many parameter links were rewired.
//
// f decides what each port should become; producing a link that keeps
// the graph well-formed is the caller's responsibility. RedoPorts itself
// only performs the mechanical substitution.
func RedoPorts[P any](store *rvsdg.Store[P], idx *successors.Index, from rvsdg.Id, f func(rvsdg.Port) (rvsdg.Link, bool)) int {
	total := 0
	for _, s := range idx.Of(from) {
		total += store.RewriteParameters(s, func(l rvsdg.Link) (rvsdg.Link, bool) {
			if l.Node != from {
				return rvsdg.Link{}, false
			}
			nl, ok := f(l.Port)
			if !ok {
				return rvsdg.Link{}, false
			}
			return nl, true
		})
	}
	return total
}

// RedoPortsInPlace redirects every successor of from to read the same
// port from to instead, unconditionally. It is shorthand for
// RedoPorts(store, idx, from, func(p Port) (Link, bool) { return Link{to, p}, true }).
//
// RedoPortsInPlace(idx, from, from) is a no-op: every port maps back to
// itself.
func RedoPortsInPlace[P any](store *rvsdg.Store[P], idx *successors.Index, from, to rvsdg.Id) int {
	return RedoPorts(store, idx, from, func(p rvsdg.Port) (rvsdg.Link, bool) {
		return rvsdg.Link{Node: to, Port: p}, true
	})
}
