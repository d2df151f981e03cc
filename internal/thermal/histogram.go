package thermal

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Histogram is a 2D hue × saturation histogram stored row-major by hue bin.
type Histogram struct {
	HueBins int
	SatBins int
	Counts  []float64
}

// BuildHistogram bins the (hue, saturation) pair of every valid pixel.
//
// Bin index is floor(value × bins) clamped to [0, bins-1]. valid may be nil.
func BuildHistogram(img *HSVImage, hueBins, satBins int, valid *Mask) *Histogram {
	h := &Histogram{HueBins: hueBins, SatBins: satBins, Counts: make([]float64, hueBins*satBins)}
	for i, px := range img.Pix {
		if !valid.valid(i) {
			continue
		}
		hb := binIndex(px.H, hueBins)
		sb := binIndex(px.S, satBins)
		h.Counts[hb*satBins+sb]++
	}
	return h
}

// Normalize scales the counts to sum to 1. A histogram with zero mass is
// left untouched.
func (h *Histogram) Normalize() {
	total := floats.Sum(h.Counts)
	if total > 0 {
		floats.Scale(1/total, h.Counts)
	}
}

// Sum returns the total mass of the histogram.
func (h *Histogram) Sum() float64 {
	return floats.Sum(h.Counts)
}

// HistogramDistance returns the L2 norm of the bin-wise difference.
//
// Both histograms must have the same bin layout.
func HistogramDistance(a, b *Histogram) float64 {
	return floats.Distance(a.Counts, b.Counts, 2)
}

func binIndex(v float64, bins int) int {
	i := int(math.Floor(v * float64(bins)))
	if i < 0 {
		return 0
	}
	if i > bins-1 {
		return bins - 1
	}
	return i
}
