package dagnn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivate(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(float32(0), Activate(0))
	assert.InDelta(0.7615942, Activate(1), 1e-6)
	// x·tanh(x) is even
	assert.InDelta(Activate(1.5), Activate(-1.5), 1e-6)
}

func TestMSE(t *testing.T) {
	assert := assert.New(t)
	for _, a := range [][]float32{
		{},
		{0, 0, 0},
		{1, -2, 0.5},
	} {
		assert.Equal(float32(0), MSE(a, a), "MSE(%v, %v)", a, a)
	}

	// |1-0|·ln(2) + |0-3|·ln(4)
	assert.InDelta(0.6931472+3*1.3862944, MSE([]float32{1, 0}, []float32{0, 3}), 1e-5)
	assert.True(MSE([]float32{0.2}, []float32{0.7}) > 0)
	assert.Panics(func() { MSE([]float32{1}, []float32{1, 2}) })
}

var scores = []struct {
	a, b    []float32
	correct int
}{
	{[]float32{}, []float32{}, 0},
	{[]float32{0.9, 0.1, 0.6}, []float32{1, 0, 1}, 3},
	{[]float32{0.9, 0.9, 0.1}, []float32{1, 0, 1}, 1},
	{[]float32{0.5, 0.5}, []float32{1, 0}, 0},
	{[]float32{0.51, 0.49}, []float32{1, 0}, 2},
	{[]float32{0, 0, 0}, []float32{0, 0, 0}, 3},
	{[]float32{0.9}, []float32{0.5}, 0}, // a target of 0.5 has no polarity
}

func TestScore(t *testing.T) {
	for _, c := range scores {
		if s := Score(c.a, c.b); s != c.correct {
			t.Errorf("Expected Score(%v, %v) to be %d. Got %d instead", c.a, c.b, c.correct, s)
		}
	}
	assert.Panics(t, func() { Score([]float32{1, 2}, []float32{1}) })
}
