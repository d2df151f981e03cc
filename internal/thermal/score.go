package thermal

import (
	"math"

	"github.com/ironsheep/thermal-inspect-mcp/internal/params"
)

// Score combines the three global signals into a detection probability.
//
//	score = histDistance/histScale + dv95*dv95Scale + warmFraction*warmScale
//	prob  = 1 / (1 + e^-score)
//
// The weights are hand tuned, not learned.
func Score(histDistance, dv95, warmFraction float64, t params.Thresholds) (score, prob float64) {
	score = histDistance/t.HistScale + dv95*t.DV95Scale + warmFraction*t.WarmScale
	return score, 1 / (1 + math.Exp(-score))
}
