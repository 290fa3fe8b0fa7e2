// Package sweep implements mark-and-sweep reachability pruning:
// retain only the nodes reachable from a given root set.
package sweep

import (
	"github.com/lvlath/rvsdg"
	"github.com/lvlath/rvsdg/traverse"
)

// Sweep runs v's reverse-topological walk from roots to mark every
// reachable node, then removes every live node in store that was not
// reached. A compound's region markers are removed as part of removing
// the compound itself (Store.Remove cascades), so no separate region-map
// cleanup is needed. Sweep is idempotent: sweeping twice from the same
// roots prunes nothing the second time.
//
// Complexity: O(N+E) where N is the reachable node count and E their
// parameter edges.
func Sweep[P any](store *rvsdg.Store[P], v *traverse.Visitor[P], roots ...rvsdg.Id) int {
	v.Reset()
	for range v.Walk(store, roots...) {
	}
	seen := v.Seen()

	var dead []rvsdg.Id
	for id := range store.Keys() {
		if !seen.Test(uint(id.Index())) {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		store.Remove(id)
	}
	return len(dead)
}
