package main

import (
	"image/gif"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeights(t *testing.T) {
	w, err := parseWeights("0.5, -1,0,2")
	require.NoError(t, err)
	assert.Equal(t, [4]float32{0.5, -1, 0, 2}, w)

	_, err = parseWeights("1,2,3")
	assert.Error(t, err)
	_, err = parseWeights("1,2,x,4")
	assert.Error(t, err)
}

func TestEncoderDropsWhenFull(t *testing.T) {
	enc := NewEncoder(1)
	require.NoError(t, enc.Encode(dagnn.Frame{Name: "a"}))
	require.NoError(t, enc.Encode(dagnn.Frame{Name: "b"}))
	got := <-enc.info
	assert.Equal(t, "a", got.Name)
	assert.NoError(t, enc.Flush())
}

func TestEncoderFeed(t *testing.T) {
	enc := NewEncoder(4)
	srv := httptest.NewServer(enc)
	defer srv.Close()

	c, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer c.Close()

	p := dagnn.Progress{Generation: 100, Metrics: dagnn.Metrics{Error: 1.5, Fitness: 3}, Examples: 4}
	require.NoError(t, enc.Encode(dagnn.Frame{Name: "xor", Progress: p, Links: [][]float32{{1, 2}}}))

	var got info
	require.NoError(t, c.ReadJSON(&got))
	assert.Equal(t, info{Name: "xor", Generation: 100, Error: 1.5, Fitness: 3, Examples: 4, Links: [][]float32{{1, 2}}}, got)
}

func TestRunExhaustedClosesOutputs(t *testing.T) {
	dir := t.TempDir()
	oldTask, oldGens, oldGif, oldStats, oldSeed := *taskName, *gens, *gifFile, *statsFile, *seed
	defer func() {
		*taskName, *gens, *gifFile, *statsFile, *seed = oldTask, oldGens, oldGif, oldStats, oldSeed
	}()
	*taskName = "xor"
	*gens = 2
	*seed = 1
	*gifFile = filepath.Join(dir, "xor.gif")
	*statsFile = filepath.Join(dir, "xor.csv")

	converged, err := run()
	require.NoError(t, err)
	assert.False(t, converged)

	f, err := os.Open(*gifFile)
	require.NoError(t, err)
	defer f.Close()
	g, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, g.Image, 2, "first generation and the final report")

	_, err = os.Stat(*statsFile)
	assert.NoError(t, err)
}

func TestRunBadConfig(t *testing.T) {
	old := *rate
	defer func() { *rate = old }()
	*rate = -1
	_, err := run()
	assert.Error(t, err)
}
