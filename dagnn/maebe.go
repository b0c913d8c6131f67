package dagnn

import (
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
)

type maebe struct {
	err error
}

// generic monad... may be useful
func (m *maebe) do(f func() (*G.Node, error)) (retVal *G.Node) {
	if m.err != nil {
		return nil
	}
	if retVal, m.err = f(); m.err != nil {
		m.err = errors.WithStack(m.err)
	}
	return
}

// axpy returns acc + x·w.
func (m *maebe) axpy(acc, x, w *G.Node) *G.Node {
	xw := m.do(func() (*G.Node, error) { return G.Mul(x, w) })
	return m.do(func() (*G.Node, error) { return G.Add(acc, xw) })
}

// activate is Activate as a graph operation.
func (m *maebe) activate(x *G.Node) *G.Node {
	tanh := m.do(func() (*G.Node, error) { return G.Tanh(x) })
	return m.do(func() (*G.Node, error) { return G.Mul(x, tanh) })
}
