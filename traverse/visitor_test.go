package traverse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath/rvsdg"
	"github.com/lvlath/rvsdg/traverse"
)

type op struct {
	name string
	in   []rvsdg.Link
}

func (o *op) AsParameters() []rvsdg.Link { return o.in }

func walkAll(s *rvsdg.Store[*op], v *traverse.Visitor[*op], roots ...rvsdg.Id) []rvsdg.Id {
	var out []rvsdg.Id
	for id := range v.Walk(s, roots...) {
		out = append(out, id)
	}
	return out
}

func TestVisitor_LinearChainPostOrder(t *testing.T) {
	s := rvsdg.NewStore[*op]()
	a, _ := s.InsertSimple(&op{name: "a"})
	b, _ := s.InsertSimple(&op{name: "b", in: []rvsdg.Link{{Node: a, Port: 0}}})
	c, _ := s.InsertSimple(&op{name: "c", in: []rvsdg.Link{{Node: b, Port: 0}}})

	v := traverse.New[*op]()
	order := walkAll(s, v, c)
	assert.Equal(t, []rvsdg.Id{a, b, c}, order, "producers are emitted before their consumers")
}

func TestVisitor_SharedProducerEmittedOnce(t *testing.T) {
	s := rvsdg.NewStore[*op]()
	a, _ := s.InsertSimple(&op{name: "a"})
	b, _ := s.InsertSimple(&op{name: "b", in: []rvsdg.Link{{Node: a, Port: 0}}})
	c, _ := s.InsertSimple(&op{name: "c", in: []rvsdg.Link{{Node: a, Port: 0}, {Node: b, Port: 0}}})

	v := traverse.New[*op]()
	order := walkAll(s, v, c)
	require.Len(t, order, 3)
	assert.Equal(t, c, order[2])
	assert.Contains(t, order, a)
	assert.Contains(t, order, b)
	// a must precede b (b depends on a) and both precede c.
	posA, posB := indexOf(order, a), indexOf(order, b)
	assert.Less(t, posA, posB)
}

func TestVisitor_RootAbsentFromStoreSkipped(t *testing.T) {
	s := rvsdg.NewStore[*op]()
	a, _ := s.InsertSimple(&op{name: "a"})
	ghost, _ := s.InsertSimple(&op{name: "ghost"})
	s.Remove(ghost)

	v := traverse.New[*op]()
	order := walkAll(s, v, ghost, a)
	assert.Equal(t, []rvsdg.Id{a}, order)
}

func TestVisitor_NestedRegionOrdering(t *testing.T) {
	s := rvsdg.NewStore[*op]()
	p, _ := s.InsertSimple(&op{name: "p"})

	lam, regions, err := s.AddCompound(rvsdg.KindLambda, []rvsdg.Link{{Node: p, Port: 0}})
	require.NoError(t, err)
	region := regions[0]

	body, _ := s.InsertSimple(&op{name: "body", in: []rvsdg.Link{{Node: region.Start, Port: 0}}})
	require.NoError(t, s.SetEndParams(region.End, []rvsdg.Link{{Node: body, Port: 0}}))

	v := traverse.New[*op]()
	order := walkAll(s, v, lam)

	require.Equal(t, lam, order[len(order)-1], "the compound itself is emitted last")
	posP := indexOf(order, p)
	posStart := indexOf(order, region.Start)
	posBody := indexOf(order, body)
	posEnd := indexOf(order, region.End)

	assert.Less(t, posP, posStart, "external parameter precedes the region it feeds")
	assert.Less(t, posStart, posBody, "Start precedes the body node that reads it")
	assert.Less(t, posBody, posEnd, "body precedes End, which collects it")
}

func TestVisitor_ResetClearsAccumulatedSeen(t *testing.T) {
	s := rvsdg.NewStore[*op]()
	a, _ := s.InsertSimple(&op{name: "a"})

	v := traverse.New[*op]()
	first := walkAll(s, v, a)
	assert.Equal(t, []rvsdg.Id{a}, first)

	second := walkAll(s, v, a)
	assert.Empty(t, second, "without Reset, an already-seen node is not re-emitted")

	v.Reset()
	third := walkAll(s, v, a)
	assert.Equal(t, []rvsdg.Id{a}, third, "Reset clears the seen bitmap for a fresh walk")
}

func TestVisitor_SeenReflectsActiveCountSpace(t *testing.T) {
	s := rvsdg.NewStore[*op]()
	a, _ := s.InsertSimple(&op{name: "a"})

	v := traverse.New[*op]()
	walkAll(s, v, a)
	assert.True(t, v.Seen().Test(uint(a.Index())))
}

func indexOf(ids []rvsdg.Id, target rvsdg.Id) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}
