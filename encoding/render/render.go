// Package render draws a frame of a learning network: its link matrix as a heatmap
// with the progress written underneath.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/chewxy/math32"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

const (
	dpi             = 144.0
	fontsize        = 12.0
	lineheight      = 1.2
	dummyLongString = `gen 1000000  error 10000.0000`
	captionLines    = 3
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

// levels is the number of shades on either side of zero.
const levels = 8

const (
	Black = iota
	White
	Grey

	// Neutral is the palette index of a zero weight. Indices below it are negative
	// weights, above it positive ones.
	Neutral = Grey + 1 + levels
)

// Palette is a diverging palette: blue for negative weights, red for positive.
var Palette = func() color.Palette {
	p := color.Palette{
		color.Gray{0},
		color.Gray{253},
		color.Gray{160},
	}
	for i := -levels; i <= levels; i++ {
		t := float64(i) / levels
		switch {
		case t < 0:
			v := uint8(255 * (1 + t))
			p = append(p, color.RGBA{v, v, 255, 255})
		default:
			v := uint8(255 * (1 - t))
			p = append(p, color.RGBA{255, v, v, 255})
		}
	}
	return p
}()

// Renderer draws frames. Its size is fixed by the first frame it draws.
type Renderer struct {
	H, W int
	Cell int // side of a heatmap cell in pixels
	font.Drawer

	maxH, maxW  int // maxHeight and maxWidth
	padH, padW  int // padding so everything don't start at the topleft
	initialized bool
}

// New creates a renderer whose images are at most h by w pixels.
func New(h, w int) *Renderer {
	return &Renderer{
		H:    -1,
		W:    -1,
		Cell: 16,
		maxH: h,
		maxW: w,
		padH: 10,
		padW: 10,
	}
}

func lineHeight() int { return int(math.Ceil(fontsize * lineheight * dpi / 72)) }

func (r *Renderer) init(f dagnn.Frame) {
	// lazy init of face and sizes
	r.Drawer.Src = image.Black
	r.Drawer.Face = truetype.NewFace(regular, &truetype.Options{
		Size:    fontsize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})

	textW := font.MeasureString(r.Face, dummyLongString).Ceil()
	if nameW := font.MeasureString(r.Face, f.Name).Ceil(); nameW > textW {
		textW = nameW
	}
	w := maxInt(f.Cols()*r.Cell, textW) + 2*r.padW
	h := f.Rows()*r.Cell + (captionLines+1)*lineHeight() + 2*r.padH

	w = minInt(w, r.maxW)
	h = minInt(h, r.maxH)
	if w == r.maxW {
		r.padW = 0
	}
	if h == r.maxH {
		r.padH = 0
	}
	r.H = h
	r.W = w
	r.initialized = true
}

// Render draws f.
func (r *Renderer) Render(f dagnn.Frame) *image.Paletted {
	if !r.initialized {
		r.init(f)
	}

	im := image.NewPaletted(image.Rect(0, 0, r.W, r.H), Palette)
	for i := range im.Pix {
		im.Pix[i] = White
	}

	scale := maxAbs(f.Links)
	for j, row := range f.Links {
		for k, w := range row {
			idx := uint8(Grey)
			if j < f.A || k > j-f.A {
				idx = Shade(w, scale)
			}
			x0, y0 := r.padW+k*r.Cell, r.padH+j*r.Cell
			fill(im, image.Rect(x0, y0, x0+r.Cell-1, y0+r.Cell-1), idx)
		}
	}

	dy := lineHeight()
	y := r.padH + f.Rows()*r.Cell + dy
	r.Dst = im
	for _, s := range Caption(f) {
		r.Dot = fixed.P(r.padW, y)
		r.DrawString(s)
		y += dy
	}
	return im
}

// Caption is the text written under the heatmap.
func Caption(f dagnn.Frame) []string {
	status := fmt.Sprintf("score %d / %d", f.Fitness, f.Examples)
	if f.Done {
		status += "  done"
	}
	return []string{
		f.Name,
		fmt.Sprintf("gen %d  error %0.4f", f.Generation, f.Error),
		status,
	}
}

// Shade picks the palette index of weight w, where scale is the largest magnitude
// on display.
func Shade(w, scale float32) uint8 {
	if scale == 0 {
		return Neutral
	}
	l := int(math.Round(float64(w / scale * levels)))
	if l > levels {
		l = levels
	}
	if l < -levels {
		l = -levels
	}
	return uint8(Neutral + l)
}

func fill(im *image.Paletted, rect image.Rectangle, idx uint8) {
	rect = rect.Intersect(im.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			im.SetColorIndex(x, y, idx)
		}
	}
}

func maxAbs(rows [][]float32) float32 {
	var retVal float32
	for _, row := range rows {
		for _, w := range row {
			if a := math32.Abs(w); a > retVal {
				retVal = a
			}
		}
	}
	return retVal
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
