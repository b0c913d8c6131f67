package dagnn

import (
	"testing"

	"github.com/awalterschulze/gographviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitName(t *testing.T) {
	s := Structure{A: 2, B: 2, C: 1}
	var names []string
	for id := 0; id < s.Units(); id++ {
		names = append(names, s.UnitName(id))
	}
	assert.Equal(t, []string{"x0", "x1", "h0", "h1", "y0"}, names)
}

func TestToDot(t *testing.T) {
	conf := DefaultConfig(2, 2, 1)
	conf.Weights = [4]float32{0.5, 0, 1, 1}
	n := mustNew(t, conf)

	g, err := gographviz.Read([]byte(n.ToDot()))
	require.NoError(t, err)

	for _, name := range []string{"x0", "x1", "h0", "h1", "y0"} {
		assert.Contains(t, g.Nodes.Lookup, name)
	}
	for _, e := range [][2]string{
		{"x0", "h0"}, {"x0", "h1"}, {"x1", "h0"}, {"x1", "h1"},
		{"h0", "h1"}, {"h0", "y0"}, {"h1", "y0"},
	} {
		assert.NotEmpty(t, g.Edges.SrcToDsts[e[0]][e[1]], "%s → %s", e[0], e[1])
	}
	// input → output links are zero and so are left out
	assert.Empty(t, g.Edges.SrcToDsts["x0"]["y0"])
	assert.Len(t, g.Edges.Edges, 7)
}
