package thermal

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHistogram_NormalizedSumsToOne(t *testing.T) {
	img := solidImage(20, 10, midGray)
	fillRect(img, 0, 0, 10, 10, hotRed)
	fillRect(img, 15, 0, 20, 5, color.RGBA{20, 200, 90, 255})

	h := BuildHistogram(NewHSVImage(img), 30, 32, nil)
	assert.Equal(t, 200.0, h.Sum())

	h.Normalize()
	assert.InDelta(t, 1.0, h.Sum(), 1e-9)
	for _, c := range h.Counts {
		assert.GreaterOrEqual(t, c, 0.0)
	}
}

func TestBuildHistogram_EmptyStaysZero(t *testing.T) {
	img := solidImage(8, 8, hotRed)
	valid := NewMask(8, 8)

	h := BuildHistogram(NewHSVImage(img), 30, 32, valid)
	h.Normalize()
	assert.Equal(t, 0.0, h.Sum())
	for _, c := range h.Counts {
		require.Equal(t, 0.0, c)
	}
}

func TestBuildHistogram_BinPlacement(t *testing.T) {
	// Saturation 1.0 and hue just below 1 must clamp into the last bins.
	img := solidImage(1, 1, color.RGBA{255, 0, 1, 255})
	h := BuildHistogram(NewHSVImage(img), 30, 32, nil)
	assert.Equal(t, 1.0, h.Counts[29*32+31])

	red := BuildHistogram(NewHSVImage(solidImage(1, 1, hotRed)), 30, 32, nil)
	assert.Equal(t, 1.0, red.Counts[0*32+31])
}

func TestHistogramDistance_Symmetric(t *testing.T) {
	a := solidImage(10, 10, midGray)
	fillRect(a, 0, 0, 5, 5, hotRed)
	b := solidImage(10, 10, color.RGBA{30, 60, 200, 255})

	ha := BuildHistogram(NewHSVImage(a), 30, 32, nil)
	hb := BuildHistogram(NewHSVImage(b), 30, 32, nil)
	ha.Normalize()
	hb.Normalize()

	assert.Equal(t, HistogramDistance(ha, hb), HistogramDistance(hb, ha))
	assert.Equal(t, 0.0, HistogramDistance(ha, ha))
	assert.Greater(t, HistogramDistance(ha, hb), 0.0)
}

func TestHistogramDistance_ZeroHistograms(t *testing.T) {
	a := &Histogram{HueBins: 2, SatBins: 2, Counts: make([]float64, 4)}
	b := &Histogram{HueBins: 2, SatBins: 2, Counts: make([]float64, 4)}
	a.Normalize()
	b.Normalize()
	assert.Equal(t, 0.0, HistogramDistance(a, b))
}

func TestSampleBrightnessDelta(t *testing.T) {
	base := NewHSVImage(solidImage(10, 3, color.RGBA{100, 100, 100, 255}))
	cand := NewHSVImage(solidImage(10, 3, color.RGBA{200, 200, 200, 255}))

	samples := SampleBrightnessDelta(base, cand, 10, nil)
	require.Len(t, samples, 3)
	for _, s := range samples {
		assert.InDelta(t, 100.0/255, s, 1e-12)
	}

	// Cooling never counts.
	cool := SampleBrightnessDelta(cand, base, 1, nil)
	require.Len(t, cool, 30)
	for _, s := range cool {
		assert.Equal(t, 0.0, s)
	}
}

func TestSampleBrightnessDelta_RespectsMask(t *testing.T) {
	base := NewHSVImage(solidImage(4, 4, midGray))
	cand := NewHSVImage(solidImage(4, 4, hotRed))
	valid := NewMask(4, 4)
	valid.Bits[5] = true
	valid.Bits[6] = true

	assert.Len(t, SampleBrightnessDelta(base, cand, 1, valid), 2)
	assert.Len(t, SampleBrightnessDelta(base, cand, 5, valid), 1)
}

func TestPercentile(t *testing.T) {
	vals := []float64{9, 3, 7, 1, 5, 0, 2, 8, 6, 4}
	assert.Equal(t, 9.0, Percentile(vals, 0.95))
	assert.Equal(t, 0.0, Percentile(nil, 0.95))
	assert.Equal(t, 4.0, Percentile([]float64{4}, 0.95))

	// round(0.5 * 5) = round(2.5) rounds half to even -> index 2.
	assert.Equal(t, 2.0, Percentile([]float64{5, 4, 3, 2, 1, 0}, 0.5))
	// round(0.5 * 3) = round(1.5) -> index 2.
	assert.Equal(t, 2.0, Percentile([]float64{3, 2, 1, 0}, 0.5))
}
