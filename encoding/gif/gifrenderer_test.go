package gif

import (
	"bytes"
	"image/gif"
	"testing"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoder(t *testing.T) {
	conf := dagnn.DefaultConfig(2, 2, 1)
	conf.Seed = 1
	conf.MaxGenerations = 250
	n, err := dagnn.New(conf)
	require.NoError(t, err)

	var buf bytes.Buffer
	enc := NewGifEncoder(300, 500)
	enc.Writer = &buf
	n.SetReporter(dagnn.ReporterFunc(func(p dagnn.Progress) {
		require.NoError(t, enc.Encode(n.Frame("xor", p)))
	}))

	xor := dagnn.Examples{
		{Input: []float32{0, 0}, Output: []float32{0}},
		{Input: []float32{0, 1}, Output: []float32{1}},
		{Input: []float32{1, 0}, Output: []float32{1}},
		{Input: []float32{1, 1}, Output: []float32{0}},
	}
	_, err = n.Learn(xor, false)
	require.NoError(t, err)
	require.NoError(t, enc.Flush())

	g, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Equal(t, enc.Frames(), len(g.Image))
	assert.Equal(t, 300, g.Delay[len(g.Delay)-1])
	assert.Equal(t, enc.W, g.Config.Width)
	assert.Equal(t, enc.H, g.Config.Height)
}
