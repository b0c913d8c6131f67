package dagnn

import (
	"bytes"
	"fmt"
	"log"

	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Inferencer is a network compiled into an expression graph with its links frozen
// as constants. Compiling once avoids rebuilding a VM for every inference.
type Inferencer struct {
	Structure
	g *G.ExprGraph
	m G.VM

	x       *G.Node
	outputs []*G.Node
	input   *tensor.Dense
	buf     *bytes.Buffer
}

// Infer compiles a snapshot of n. Later changes to n are not seen by the Inferencer.
func Infer(n *Network, toLog bool) (*Inferencer, error) {
	if n.A == 0 || n.C == 0 {
		return nil, errors.Errorf("cannot compile structure %+v: inputs and outputs are required", n.Structure)
	}

	g := G.NewGraph()
	retVal := &Inferencer{
		Structure: n.Structure,
		g:         g,
		x:         G.NewVector(g, Float, G.WithShape(n.A), G.WithName("x")),
		input:     tensor.New(tensor.WithShape(n.A), tensor.Of(Float)),
		buf:       new(bytes.Buffer),
	}

	zero := G.NewScalar(g, Float, G.WithName("zero"), G.WithValue(float32(0)))
	weight := func(j, k int) *G.Node {
		return G.NewScalar(g, Float, G.WithName(fmt.Sprintf("w_%d_%d", j, k)), G.WithValue(n.rows[j][k]))
	}

	var m maebe
	units := make([]*G.Node, n.Cols())
	for k := range units {
		units[k] = zero
	}
	for a := 0; a < n.A; a++ {
		xa := m.do(func() (*G.Node, error) { return G.Slice(retVal.x, G.S(a)) })
		for k, w := range n.rows[a] {
			if w == 0 {
				continue
			}
			units[k] = m.axpy(units[k], xa, weight(a, k))
		}
	}
	for i := 0; i < n.B; i++ {
		j := n.A + i
		h := m.activate(units[i])
		for k := i + 1; k < n.Cols(); k++ {
			if n.rows[j][k] == 0 {
				continue
			}
			units[k] = m.axpy(units[k], h, weight(j, k))
		}
	}
	for _, u := range units[n.B:] {
		retVal.outputs = append(retVal.outputs, m.activate(u))
	}
	if m.err != nil {
		return nil, m.err
	}

	if toLog {
		logger := log.New(retVal.buf, "", 0)
		retVal.m = G.NewTapeMachine(g,
			G.WithLogger(logger),
			G.WithWatchlist(),
			G.TraceExec(),
			G.WithValueFmt("%+1.3v"),
			G.WithNaNWatch(),
		)
	} else {
		retVal.m = G.NewTapeMachine(g)
	}
	return retVal, nil
}

// Infer runs the compiled graph on input and returns the outputs.
func (inf *Inferencer) Infer(input []float32) ([]float32, error) {
	if len(input) != inf.A {
		return nil, errors.Errorf("expected %d inputs. Got %d", inf.A, len(input))
	}
	copy(inf.input.Data().([]float32), input)

	inf.m.Reset()
	inf.buf.Reset()
	if err := G.Let(inf.x, inf.input); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := inf.m.RunAll(); err != nil {
		return nil, err
	}

	retVal := make([]float32, len(inf.outputs))
	for i, y := range inf.outputs {
		v, ok := y.Value().Data().(float32)
		if !ok {
			return nil, errors.Errorf("output %d is %T. Expected float32", i, y.Value().Data())
		}
		retVal[i] = v
	}
	return retVal, nil
}

// ExecLog returns the execution log. If Infer was called with toLog = false, then it will return an empty string
func (inf *Inferencer) ExecLog() string { return inf.buf.String() }

// Close implements a closer, because well, a gorgonia VM is a resource.
func (inf *Inferencer) Close() error { return inf.m.Close() }
