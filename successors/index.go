// Package successors builds and holds the derived reverse-adjacency cache:
// for each reachable node, the set of nodes that reference it as a
// parameter producer.
package successors

import (
	"github.com/lvlath/rvsdg"
	"github.com/lvlath/rvsdg/traverse"
)

// Index maps a node to every node that lists it as a parameter producer at
// some port. It is derived state: never a source of truth, and stale the
// moment an edge-affecting mutation happens elsewhere in the Store.
type Index struct {
	byProducer map[rvsdg.Id][]rvsdg.Id
}

// Build walks every node reachable from roots (via v) and records, for
// each one, which of its parameter producers it is a successor of.
// Insertion is append-if-absent: a given successor appears at most once
// per predecessor.
func Build[P any](store *rvsdg.Store[P], v *traverse.Visitor[P], roots ...rvsdg.Id) *Index {
	idx := &Index{byProducer: make(map[rvsdg.Id][]rvsdg.Id)}
	for n := range v.Walk(store, roots...) {
		node, ok := store.Get(n)
		if !ok {
			continue
		}
		for _, l := range node.Parameters() {
			idx.add(l.Node, n)
		}
	}
	return idx
}

func (idx *Index) add(producer, successor rvsdg.Id) {
	list := idx.byProducer[producer]
	for _, s := range list {
		if s == successor {
			return
		}
	}
	idx.byProducer[producer] = append(list, successor)
}

// Of returns the successors recorded for id — every node that references
// id as a parameter producer at some port, in first-seen order. The
// returned slice is owned by the Index; callers must not mutate it.
func (idx *Index) Of(id rvsdg.Id) []rvsdg.Id {
	return idx.byProducer[id]
}

// Len reports how many distinct producers have at least one recorded
// successor.
func (idx *Index) Len() int { return len(idx.byProducer) }
