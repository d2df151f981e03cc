package thermal

import (
	"math"
	"sort"
)

// SampleBrightnessDelta collects max(0, vC - vB) for every valid pixel whose
// linear index (x + y*width) is a multiple of every.
//
// Only heating counts; cooling is floored at zero. Samples are returned in
// row-major order.
func SampleBrightnessDelta(base, cand *HSVImage, every int, valid *Mask) []float64 {
	if every < 1 {
		every = 1
	}
	samples := make([]float64, 0, len(cand.Pix)/every+1)
	for i := range cand.Pix {
		if !valid.valid(i) || i%every != 0 {
			continue
		}
		samples = append(samples, math.Max(0, cand.Pix[i].V-base.Pix[i].V))
	}
	return samples
}

// Percentile sorts values in place and returns the element at
// round(p × (n-1)), rounding half to even. An empty slice yields 0.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	idx := int(math.RoundToEven(p * float64(len(values)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > len(values)-1 {
		idx = len(values) - 1
	}
	return values[idx]
}
