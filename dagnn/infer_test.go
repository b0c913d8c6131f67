package dagnn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferencerAgreesWithForward(t *testing.T) {
	conf := DefaultConfig(3, 3, 2)
	conf.Weights = [4]float32{0.3, -0.2, 0.7, 0.4}
	n := mustNew(t, conf)
	require.NoError(t, n.SetLink(0, 4, 1.25))
	require.NoError(t, n.SetLink(3, 0, 0))

	inf, err := Infer(n, false)
	require.NoError(t, err)
	defer inf.Close()

	for _, in := range [][]float32{
		{0, 0, 0},
		{1, 0, 1},
		{0.5, -1, 2},
	} {
		want, err := n.Forward(in)
		require.NoError(t, err)
		got, err := inf.Infer(in)
		require.NoError(t, err)
		require.Len(t, got, len(want))
		for i := range want {
			assert.InDelta(t, want[i], got[i], 1e-4, "input %v output %d", in, i)
		}
	}
	assert.Empty(t, inf.ExecLog())

	_, err = inf.Infer([]float32{1})
	assert.Error(t, err)
}

func TestInferLogs(t *testing.T) {
	n := mustNew(t, DefaultConfig(2, 1, 1))
	inf, err := Infer(n, true)
	require.NoError(t, err)
	defer inf.Close()

	out, err := inf.Infer([]float32{1, 0})
	require.NoError(t, err)
	assert.Equal(t, []float32{0}, out)
	assert.NotEmpty(t, inf.ExecLog())
}

func TestInferRejectsDegenerate(t *testing.T) {
	for _, s := range []Structure{{0, 2, 1}, {2, 2, 0}} {
		n := mustNew(t, DefaultConfig(s.A, s.B, s.C))
		_, err := Infer(n, false)
		assert.Error(t, err, "%+v", s)
	}
}
