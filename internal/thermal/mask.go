package thermal

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/thermal-inspect-mcp/internal/params"
)

// Mask is a row-major boolean grid with the dimensions of an image.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// NewMask allocates an all-false mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Bits: make([]bool, width*height)}
}

// MaskFromImage builds a validity mask from img: a pixel is valid when it is
// not pure black. This is the format alignment tools emit when they warp an
// all-white frame alongside the baseline.
func MaskFromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			r, g, bl, _ := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
			m.Bits[y*m.Width+x] = r|g|bl != 0
		}
	}
	return m
}

// At reports whether (x, y) is set. No bounds checking is performed.
func (m *Mask) At(x, y int) bool {
	return m.Bits[y*m.Width+x]
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// valid reports whether pixel i participates; a nil mask admits everything.
func (m *Mask) valid(i int) bool {
	return m == nil || m.Bits[i]
}

// IsWarm applies the four warm-region predicates to one pixel.
//
// The hue window wraps around red: hue <= low OR hue >= high.
func IsWarm(base, cand HSV, t params.Thresholds) bool {
	warmHue := cand.H <= t.WarmHueLow || cand.H >= t.WarmHueHigh
	return warmHue &&
		cand.S >= t.WarmSat &&
		cand.V >= t.WarmVal &&
		cand.V-base.V >= t.Contrast
}

// BuildWarmMask marks every valid pixel that satisfies IsWarm.
//
// base and cand must have identical dimensions; valid may be nil.
func BuildWarmMask(base, cand *HSVImage, t params.Thresholds, valid *Mask) *Mask {
	w := cand.Width
	warm := NewMask(w, cand.Height)

	parallel.Line(cand.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				if !valid.valid(i) {
					continue
				}
				warm.Bits[i] = IsWarm(base.Pix[i], cand.Pix[i], t)
			}
		}
	})
	return warm
}
