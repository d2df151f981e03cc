package thermal

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// HSV is a pixel in hue/saturation/value space.
//
// All components are normalized:
//   - H: hue in [0,1), circular (0 and 1 are both red)
//   - S: saturation in [0,1]
//   - V: value (max channel) in [0,1]
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// RGBToHSV converts 8-bit RGB components to normalized HSV.
//
// A fully desaturated color (max == min) has hue 0.
func RGBToHSV(r, g, b uint8) HSV {
	c := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
	h, s, v := c.Hsv()
	h /= 360.0
	if h >= 1 {
		h -= 1
	}
	return HSV{H: h, S: s, V: v}
}

// HSVImage is a row-major plane of HSV pixels.
type HSVImage struct {
	Width  int
	Height int
	Pix    []HSV
}

// NewHSVImage converts img to HSV.
//
// The source is normalized to non-premultiplied 8-bit RGBA first, so alpha
// is ignored the same way a plain RGB decode would ignore it. Rows are
// converted concurrently; each row writes only its own range of Pix.
func NewHSVImage(img image.Image) *HSVImage {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := &HSVImage{Width: w, Height: h, Pix: make([]HSV, w*h)}

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < w; x++ {
				i := x * 4
				out.Pix[y*w+x] = RGBToHSV(row[i], row[i+1], row[i+2])
			}
		}
	})
	return out
}

// At returns the pixel at (x, y). No bounds checking is performed.
func (p *HSVImage) At(x, y int) HSV {
	return p.Pix[y*p.Width+x]
}

// MeanValue returns the mean V channel over the whole plane.
func (p *HSVImage) MeanValue() float64 {
	if len(p.Pix) == 0 {
		return 0
	}
	var sum float64
	for _, px := range p.Pix {
		sum += px.V
	}
	return sum / float64(len(p.Pix))
}
