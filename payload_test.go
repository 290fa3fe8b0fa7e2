package rvsdg_test

import (
	"fmt"
	"io"

	"github.com/lvlath/rvsdg"
)

// op is a minimal Simple payload used across tests: a named opcode with an
// explicit input list, forwarded via AsParameters/AsParametersMut at zero
// cost.
type op struct {
	name string
	in   []rvsdg.Link
}

func (o *op) AsParameters() []rvsdg.Link    { return o.in }
func (o *op) AsParametersMut() []rvsdg.Link { return o.in }

func (o *op) WriteContent(w io.Writer) error {
	_, err := fmt.Fprint(w, o.name)
	return err
}

func (o *op) WritePortIn(w io.Writer, port rvsdg.Port) error {
	return rvsdg.DefaultPortLabel(w, port)
}

func (o *op) WritePortOut(w io.Writer, port rvsdg.Port) error {
	return rvsdg.DefaultPortLabel(w, port)
}

// twoOut is a Simple payload that declares two output ports.
type twoOut struct{ op }

func (twoOut) OutArity() int { return 2 }
