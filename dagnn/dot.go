package dagnn

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// UnitName names unit id: x for inputs, h for hidden units and y for outputs.
func (s Structure) UnitName(id int) string {
	switch {
	case id < s.A:
		return fmt.Sprintf("x%d", id)
	case id < s.A+s.B:
		return fmt.Sprintf("h%d", id-s.A)
	default:
		return fmt.Sprintf("y%d", id-s.A-s.B)
	}
}

// ToDot renders the units and every non-zero link as a graphviz digraph.
func (n *Network) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(true)
	g.AddAttr("G", "rankdir", "LR")

	for id := 0; id < n.Units(); id++ {
		shape := "circle"
		switch {
		case id < n.A:
			shape = "box"
		case id >= n.A+n.B:
			shape = "doublecircle"
		}
		g.AddNode("G", n.UnitName(id), map[string]string{"shape": shape})
	}

	for j, row := range n.rows {
		for k, w := range row {
			if w == 0 {
				continue
			}
			attrs := map[string]string{
				"label": fmt.Sprintf(`"%.3f"`, w),
			}
			g.AddEdge(n.UnitName(j), n.UnitName(n.A+k), true, attrs)
		}
	}
	return g.String()
}
