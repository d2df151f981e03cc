package thermal

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solidImage creates an in-memory image filled with one color.
func solidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// fillRect paints [x0,x1) × [y0,y1) with c.
func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Set(x, y, c)
		}
	}
}

var (
	midGray = color.RGBA{128, 128, 128, 255}
	hotRed  = color.RGBA{255, 0, 0, 255}
)

func TestRGBToHSV_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    HSV
	}{
		{"red", 255, 0, 0, HSV{0, 1, 1}},
		{"green", 0, 255, 0, HSV{1.0 / 3, 1, 1}},
		{"blue", 0, 0, 255, HSV{2.0 / 3, 1, 1}},
		{"yellow", 255, 255, 0, HSV{1.0 / 6, 1, 1}},
		{"magenta", 255, 0, 255, HSV{5.0 / 6, 1, 1}},
		{"white", 255, 255, 255, HSV{0, 0, 1}},
		{"black", 0, 0, 0, HSV{0, 0, 0}},
		{"gray", 128, 128, 128, HSV{0, 0, 128.0 / 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSV(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.want.H, got.H, 1e-9)
			assert.InDelta(t, tt.want.S, got.S, 1e-9)
			assert.InDelta(t, tt.want.V, got.V, 1e-9)
		})
	}
}

func TestRGBToHSV_ValueIsMaxChannel(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 23 {
			for b := 0; b < 256; b += 29 {
				got := RGBToHSV(uint8(r), uint8(g), uint8(b))
				want := float64(max(r, g, b)) / 255
				require.InDelta(t, want, got.V, 1e-12)
				require.GreaterOrEqual(t, got.H, 0.0)
				require.Less(t, got.H, 1.0)
				require.GreaterOrEqual(t, got.S, 0.0)
				require.LessOrEqual(t, got.S, 1.0)
			}
		}
	}
}

func TestRGBToHSV_HueIgnoresScale(t *testing.T) {
	pairs := [][2][3]uint8{
		{{200, 100, 50}, {100, 50, 25}},
		{{40, 220, 120}, {20, 110, 60}},
		{{90, 30, 240}, {30, 10, 80}},
	}
	for _, p := range pairs {
		a := RGBToHSV(p[0][0], p[0][1], p[0][2])
		b := RGBToHSV(p[1][0], p[1][1], p[1][2])
		assert.InDelta(t, a.H, b.H, 1e-9, "hue should not change under uniform scaling")
	}
}

func TestNewHSVImage(t *testing.T) {
	img := solidImage(7, 5, midGray)
	fillRect(img, 2, 1, 4, 3, hotRed)

	p := NewHSVImage(img)
	require.Equal(t, 7, p.Width)
	require.Equal(t, 5, p.Height)
	require.Len(t, p.Pix, 35)

	assert.Equal(t, RGBToHSV(255, 0, 0), p.At(2, 1))
	assert.Equal(t, RGBToHSV(255, 0, 0), p.At(3, 2))
	assert.Equal(t, RGBToHSV(128, 128, 128), p.At(0, 0))
	assert.Equal(t, RGBToHSV(128, 128, 128), p.At(6, 4))
}

func TestNewHSVImage_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 14, 23))
	img.Set(10, 20, hotRed)

	p := NewHSVImage(img)
	assert.Equal(t, 4, p.Width)
	assert.Equal(t, 3, p.Height)
	assert.Equal(t, 1.0, p.At(0, 0).V)
}

func TestHSVImage_MeanValue(t *testing.T) {
	img := solidImage(4, 4, color.RGBA{0, 0, 0, 255})
	fillRect(img, 0, 0, 4, 2, color.RGBA{255, 255, 255, 255})

	assert.InDelta(t, 0.5, NewHSVImage(img).MeanValue(), 1e-12)
	assert.Equal(t, 0.0, (&HSVImage{}).MeanValue())
	assert.False(t, math.IsNaN((&HSVImage{}).MeanValue()))
}
