package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath/rvsdg"
	"github.com/lvlath/rvsdg/rewrite"
	"github.com/lvlath/rvsdg/successors"
	"github.com/lvlath/rvsdg/traverse"
)

type op struct {
	name string
	in   []rvsdg.Link
}

func (o *op) AsParameters() []rvsdg.Link    { return o.in }
func (o *op) AsParametersMut() []rvsdg.Link { return o.in }

func TestRedoPorts_RedirectsMatchingSuccessors(t *testing.T) {
	s := rvsdg.NewStore[*op]()
	a, _ := s.InsertSimple(&op{name: "a"})
	c, _ := s.InsertSimple(&op{name: "c"})
	b1, _ := s.InsertSimple(&op{name: "b1", in: []rvsdg.Link{{Node: a, Port: 0}}})
	b2, _ := s.InsertSimple(&op{name: "b2", in: []rvsdg.Link{{Node: a, Port: 0}}})

	idx := successors.Build(s, traverse.New[*op](), b1, b2)
	n := rewrite.RedoPorts(s, idx, a, func(p rvsdg.Port) (rvsdg.Link, bool) {
		return rvsdg.Link{Node: c, Port: 0}, true
	})
	assert.Equal(t, 2, n)

	for _, id := range []rvsdg.Id{b1, b2} {
		node, ok := s.Get(id)
		require.True(t, ok)
		for _, l := range node.Parameters() {
			assert.Equal(t, c, l.Node)
		}
	}
}

func TestRedoPorts_NonMatchLeavesLinkUntouched(t *testing.T) {
	s := rvsdg.NewStore[*op]()
	a, _ := s.InsertSimple(&op{name: "a"})
	other, _ := s.InsertSimple(&op{name: "other"})
	b, _ := s.InsertSimple(&op{name: "b", in: []rvsdg.Link{{Node: a, Port: 0}, {Node: other, Port: 0}}})

	idx := successors.Build(s, traverse.New[*op](), b)
	n := rewrite.RedoPorts(s, idx, a, func(p rvsdg.Port) (rvsdg.Link, bool) {
		return rvsdg.Link{}, false
	})
	assert.Equal(t, 0, n)

	node, _ := s.Get(b)
	params := node.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, a, params[0].Node)
	assert.Equal(t, other, params[1].Node)
}

func TestRedoPortsInPlace_RetargetsWithoutChangingPort(t *testing.T) {
	s := rvsdg.NewStore[*op]()
	a, _ := s.InsertSimple(&op{name: "a"})
	c, _ := s.InsertSimple(&op{name: "c"})
	b, _ := s.InsertSimple(&op{name: "b", in: []rvsdg.Link{{Node: a, Port: 2}}})

	idx := successors.Build(s, traverse.New[*op](), b)
	n := rewrite.RedoPortsInPlace(s, idx, a, c)
	assert.Equal(t, 1, n)

	node, _ := s.Get(b)
	assert.Equal(t, rvsdg.Link{Node: c, Port: 2}, node.Parameters()[0])
}

func TestRedoPortsInPlace_SelfRetargetIsNoop(t *testing.T) {
	s := rvsdg.NewStore[*op]()
	a, _ := s.InsertSimple(&op{name: "a"})
	b, _ := s.InsertSimple(&op{name: "b", in: []rvsdg.Link{{Node: a, Port: 0}}})

	idx := successors.Build(s, traverse.New[*op](), b)
	rewrite.RedoPortsInPlace(s, idx, a, a)

	node, _ := s.Get(b)
	assert.Equal(t, a, node.Parameters()[0].Node)
}
