package dagnn

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// CheckAcyclic verifies that the links form a directed acyclic graph in which the
// index order of the units is a topological order.
func (n *Network) CheckAcyclic() error {
	A, B := n.A, n.B
	for i := 0; i < B; i++ {
		for k := 0; k <= i; k++ {
			if w := n.rows[A+i][k]; w != 0 {
				return errors.Errorf("hidden unit %d links back to hidden unit %d with weight %v", i, k, w)
			}
		}
	}

	g := simple.NewDirectedGraph()
	for id := 0; id < n.Units(); id++ {
		g.AddNode(simple.Node(id))
	}
	for j, row := range n.rows {
		for k, w := range row {
			if w == 0 {
				continue
			}
			to := A + k
			if to == j {
				return errors.Errorf("unit %d links to itself", j)
			}
			g.SetEdge(g.NewEdge(simple.Node(j), simple.Node(to)))
		}
	}

	if _, err := topo.Sort(g); err != nil {
		return errors.Wrap(err, "links contain a cycle")
	}
	return nil
}
