package mjpeg

import (
	"bytes"
	"image/jpeg"
	"log"
	"net/http"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/RWayne93/NICE/encoding/render"
	"github.com/mattn/go-mjpeg"
)

// Encoder is a structure that streams the frames of a learning network according to the nice.OutputEncoder interface
type Encoder struct {
	*render.Renderer

	// Quality of the JPEG frames, 1 to 100.
	Quality int

	stream *mjpeg.Stream
	last   []byte
}

func (e *Encoder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.stream.ServeHTTP(w, r)
}

// NewEncoder with height and width
func NewEncoder(h, w int) *Encoder {
	return &Encoder{
		Renderer: render.New(h, w),
		Quality:  jpeg.DefaultQuality,
		stream:   mjpeg.NewStream(),
	}
}

// Encode a frame
func (enc *Encoder) Encode(f dagnn.Frame) error {
	im := enc.Render(f)
	var b bytes.Buffer
	err := jpeg.Encode(&b, im, &jpeg.Options{Quality: enc.Quality})
	if err != nil {
		log.Println(err)
		return err
	}
	enc.last = b.Bytes()
	err = enc.stream.Update(enc.last)
	if err != nil {
		log.Println(err)
		return err
	}
	return nil
}

// Last returns the latest JPEG frame sent to the stream.
func (enc *Encoder) Last() []byte { return enc.last }

func (enc *Encoder) Flush() error { return nil }
