package task

import (
	"fmt"
	"strings"
	"testing"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBits(t *testing.T) {
	assert.Equal(t, []float32{1, 0, 1, 1}, EncodeBits(11, make([]float32, 4)))
	assert.Equal(t, []float32{1, 1}, EncodeBits(7, make([]float32, 2)))
	for n := 0; n < 32; n++ {
		assert.Equal(t, n, DecodeBits(EncodeBits(n, make([]float32, 5))))
	}
}

func TestSelectBit(t *testing.T) {
	task := SelectBit()
	assert.Equal(t, dagnn.Structure{A: 7, B: 3, C: 1}, task.Structure())

	ex := task.Examples()
	require.Len(t, ex, 64)
	// 64 = 1000000: selector 00 picks bit 1
	assert.Equal(t, []float32{1, 0, 0, 0, 0, 0, 0}, ex[0].Input)
	assert.Equal(t, []float32{0}, ex[0].Output)
	// 77 = 1001101: selector 01 picks bit 2
	assert.Equal(t, []float32{0}, ex[13].Output)
	// 90 = 1011010: selector 10 picks bit 3
	assert.Equal(t, []float32{1}, ex[26].Output)
	// 127: every bit set
	assert.Equal(t, []float32{1}, ex[63].Output)

	var ones int
	for _, e := range ex {
		assert.Equal(t, float32(1), e.Input[0])
		ones += int(e.Output[0])
	}
	assert.Equal(t, 32, ones)
}

func TestGates(t *testing.T) {
	cases := []struct {
		task    Task
		correct []float32
	}{
		{AND(), []float32{0, 0, 0, 1}},
		{OR(), []float32{0, 1, 1, 1}},
		{XOR(), []float32{0, 1, 1, 0}},
	}
	for _, c := range cases {
		ex := c.task.Examples()
		require.Len(t, ex, 4, c.task.Name())
		for i, e := range ex {
			assert.Equal(t, c.correct[i], e.Output[0], "%s example %d", c.task.Name(), i)
		}
	}
}

func TestParity(t *testing.T) {
	task, err := Parity(3)
	require.NoError(t, err)
	assert.Equal(t, "parity3", task.Name())
	ex := task.Examples()
	require.Len(t, ex, 8)
	for i, e := range ex {
		var set int
		for _, b := range e.Input {
			set += int(b)
		}
		assert.Equal(t, float32(set%2), e.Output[0], "example %d", i)
	}

	_, err = Parity(0)
	assert.Error(t, err)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"selectbit", "AND", "or", "xor", "parity5"} {
		task, err := ByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, strings.ToLower(name), task.Name())
	}
	for _, name := range []string{"", "nand", "parity", "parityx", "parity99"} {
		_, err := ByName(name)
		assert.Error(t, err, name)
	}
}

func TestFromCSV(t *testing.T) {
	const data = `# a, b, a&b, a|b
0,0,0,0
0,1,0,1

1,0,0,1
1, 1, 1, 1
`
	task, err := FromCSV("gates", strings.NewReader(data), dagnn.Structure{A: 2, B: 1, C: 2})
	require.NoError(t, err)
	ex := task.Examples()
	require.Len(t, ex, 4)
	assert.Equal(t, dagnn.Example{Input: []float32{1, 1}, Output: []float32{1, 1}}, ex[3])
	assert.Equal(t, "gates (2-1-2, 4 examples)", fmt.Sprintf("%v", task))

	// inputs are capped so appending to one cannot clobber its outputs
	assert.Equal(t, 2, cap(ex[1].Input))
}

func TestFromCSVInvalid(t *testing.T) {
	_, err := FromCSV("bad", strings.NewReader("0,0,0\n1,1\n"), dagnn.Structure{A: 2, C: 1})
	require.Error(t, err)
	assert.Equal(t, errInvalidLine{lineNum: 2, splits: 2, expected: 3}, err)

	_, err = FromCSV("bad", strings.NewReader("0,x,1\n"), dagnn.Structure{A: 2, C: 1})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	_, err := New("bad", dagnn.Structure{A: 2, C: 1}, dagnn.Examples{{Input: []float32{1}, Output: []float32{1}}})
	assert.Error(t, err)
}
