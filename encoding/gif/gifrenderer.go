package gif

import (
	"image/gif"
	"io"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/RWayne93/NICE/encoding/render"
)

// Encoder is a structure that encodes the frames of a learning network according to the nice.OutputEncoder interface
type Encoder struct {
	*render.Renderer
	io.Writer

	// Delay between frames, in 100ths of a second. The final frame is held longer.
	Delay int

	out *gif.GIF
}

// NewGifEncoder with height and width
func NewGifEncoder(h, w int) *Encoder {
	return &Encoder{
		Renderer: render.New(h, w),
		Delay:    10,
		out:      &gif.GIF{LoopCount: -1},
	}
}

// Encode a frame
func (enc *Encoder) Encode(f dagnn.Frame) error {
	im := enc.Render(f)
	delay := enc.Delay
	if f.Done {
		delay = 300
	}
	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, delay)
	return nil
}

// Frames is the number of frames encoded so far.
func (enc *Encoder) Frames() int { return len(enc.out.Image) }

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error { return gif.EncodeAll(enc.Writer, enc.out) }
