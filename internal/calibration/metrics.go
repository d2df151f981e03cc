package calibration

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/thermal-inspect-mcp/internal/thermal"
)

// FeedbackBox is a reviewer-drawn box as [x, y, w, h] in candidate pixels.
//
// Coordinates may be fractional; they are widened to whole pixels when the
// region is measured.
type FeedbackBox [4]float64

// UnmarshalJSON requires exactly four numbers.
func (b *FeedbackBox) UnmarshalJSON(data []byte) error {
	var v []float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("feedback box: %w", err)
	}
	if len(v) != 4 {
		return fmt.Errorf("feedback box: want 4 numbers, got %d", len(v))
	}
	copy(b[:], v)
	return nil
}

// RegionMetrics summarises the candidate pixels under one feedback box.
type RegionMetrics struct {
	PixelCount     float64 `json:"pixel_count"`
	AreaRatio      float64 `json:"area_ratio"`
	MeanSaturation float64 `json:"mean_saturation"`
	MeanValue      float64 `json:"mean_value"`
	MeanDeltaValue float64 `json:"mean_delta_value"`
	WarmFraction   float64 `json:"warm_fraction"`
	MeanHue        float64 `json:"mean_hue"`
	MaxValue       float64 `json:"max_value"`
}

// MeasureRegion computes RegionMetrics for box over img.
//
// The box is widened to whole pixels (floor of the origin, ceil of the far
// edge) and clipped to the image. imageMean is the mean value of the whole
// image; MeanDeltaValue is the region mean minus it. A pixel counts as warm
// when its hue is <= hueLow or >= hueHigh. The mean hue is the circular mean.
//
// ok is false when nothing of the box remains after clipping.
func MeasureRegion(img *thermal.HSVImage, box FeedbackBox, imageMean, hueLow, hueHigh float64) (m RegionMetrics, ok bool) {
	x0 := max(0, int(math.Floor(box[0])))
	y0 := max(0, int(math.Floor(box[1])))
	x1 := min(img.Width, int(math.Ceil(box[0]+box[2])))
	y1 := min(img.Height, int(math.Ceil(box[1]+box[3])))
	if x1 <= x0 || y1 <= y0 {
		return RegionMetrics{}, false
	}

	n := (x1 - x0) * (y1 - y0)
	sat := make([]float64, 0, n)
	val := make([]float64, 0, n)
	var sinSum, cosSum float64
	warm := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := img.At(x, y)
			sat = append(sat, p.S)
			val = append(val, p.V)
			if p.H <= hueLow || p.H >= hueHigh {
				warm++
			}
			angle := p.H * 2 * math.Pi
			sinSum += math.Sin(angle)
			cosSum += math.Cos(angle)
			m.MaxValue = math.Max(m.MaxValue, p.V)
		}
	}

	hue := math.Atan2(sinSum, cosSum) / (2 * math.Pi)
	if hue < 0 {
		hue++
	}

	m.PixelCount = float64(n)
	m.AreaRatio = float64(n) / float64(img.Width*img.Height)
	m.MeanSaturation = stat.Mean(sat, nil)
	m.MeanValue = stat.Mean(val, nil)
	m.MeanDeltaValue = m.MeanValue - imageMean
	m.WarmFraction = float64(warm) / float64(n)
	m.MeanHue = hue
	return m, true
}
