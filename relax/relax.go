// Package relax implements invariant-input relaxation: detecting
// Gamma/Theta outputs that are pass-throughs of an external parameter and
// rewiring their users to read the parameter directly.
package relax

import (
	"github.com/lvlath/rvsdg"
	"github.com/lvlath/rvsdg/rewrite"
	"github.com/lvlath/rvsdg/successors"
	"github.com/lvlath/rvsdg/traverse"
)

// Relax applies invariant-input relaxation to the node named by id if it
// is a Gamma or Theta, and returns the number of user edges rewired. Any
// other node kind (including a dead id) is a non-match and returns 0
// without touching the graph.
func Relax[P any](store *rvsdg.Store[P], idx *successors.Index, id rvsdg.Id) int {
	kind, ok := store.Kind(id)
	if !ok {
		return 0
	}
	switch kind {
	case rvsdg.KindGamma:
		return relaxGamma(store, idx, id)
	case rvsdg.KindTheta:
		return relaxTheta(store, idx, id)
	default:
		return 0
	}
}

// RelaxAll applies Relax to every compound reachable from roots (via v)
// and returns the total number of rewired edges. It does not reset v
// first; pass a freshly Reset visitor for a from-scratch pass over roots.
func RelaxAll[P any](store *rvsdg.Store[P], v *traverse.Visitor[P], idx *successors.Index, roots ...rvsdg.Id) int {
	total := 0
	for id := range v.Walk(store, roots...) {
		total += Relax(store, idx, id)
	}
	return total
}

// passthrough reports params[link.Port] and true if link names start,
// else (zero, false).
func passthrough(params []rvsdg.Link, start rvsdg.Id, link rvsdg.Link) (rvsdg.Link, bool) {
	if link.Node != start || int(link.Port) >= len(params) {
		return rvsdg.Link{}, false
	}
	return params[link.Port], true
}

func relaxGamma[P any](store *rvsdg.Store[P], idx *successors.Index, id rvsdg.Id) int {
	cv, ok := store.Compound(id)
	if !ok || len(cv.Regions) == 0 {
		return 0
	}
	first, ok := store.Get(cv.Regions[0].End)
	if !ok {
		return 0
	}
	firstEnd, _ := first.EndParams()
	arity := len(firstEnd)

	maps := make([]*rvsdg.Link, arity)
	for i := 0; i < arity; i++ {
		if v, ok := passthrough(cv.Params, cv.Regions[0].Start, firstEnd[i]); ok {
			val := v
			maps[i] = &val
		}
	}
	for _, r := range cv.Regions[1:] {
		end, ok := store.Get(r.End)
		if !ok {
			for i := range maps {
				maps[i] = nil
			}
			break
		}
		eps, _ := end.EndParams()
		for i := 0; i < arity; i++ {
			if maps[i] == nil {
				continue
			}
			if i >= len(eps) {
				maps[i] = nil
				continue
			}
			v, ok := passthrough(cv.Params, r.Start, eps[i])
			if !ok || v != *maps[i] {
				maps[i] = nil
			}
		}
	}
	return applyMaps(store, idx, id, maps)
}

func relaxTheta[P any](store *rvsdg.Store[P], idx *successors.Index, id rvsdg.Id) int {
	cv, ok := store.Compound(id)
	if !ok || len(cv.Regions) == 0 {
		return 0
	}
	r := cv.Regions[0]
	end, ok := store.Get(r.End)
	if !ok {
		return 0
	}
	endParams, _ := end.EndParams()

	maps := make([]*rvsdg.Link, len(endParams))
	for i, l := range endParams {
		if l.Node == r.Start && int(l.Port) == i && i < len(cv.Params) {
			val := cv.Params[i]
			maps[i] = &val
		}
	}
	return applyMaps(store, idx, id, maps)
}

func applyMaps[P any](store *rvsdg.Store[P], idx *successors.Index, id rvsdg.Id, maps []*rvsdg.Link) int {
	return rewrite.RedoPorts(store, idx, id, func(p rvsdg.Port) (rvsdg.Link, bool) {
		if int(p) >= len(maps) || maps[p] == nil {
			return rvsdg.Link{}, false
		}
		return *maps[p], true
	})
}
