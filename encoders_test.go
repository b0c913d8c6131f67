package nice

import (
	"testing"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestEncoders(t *testing.T) {
	a, b := new(frames), &frames{err: errors.New("broken pipe")}
	encs := Encoders{a, b}

	err := encs.Encode(dagnn.Frame{Name: "x"})
	assert.EqualError(t, err, "broken pipe\n")
	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 1)

	assert.NoError(t, encs.Flush())
	assert.Equal(t, 1, a.flushed)
	assert.Equal(t, 1, b.flushed)

	assert.NoError(t, Encoders{a}.Encode(dagnn.Frame{}))
}
