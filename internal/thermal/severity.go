package thermal

import (
	"math"

	"github.com/ironsheep/thermal-inspect-mcp/internal/params"
)

// Severity labels.
const (
	SeverityLow      = "low"
	SeverityModerate = "moderate"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// DeltaToSeverity maps a brightness delta linearly onto [0,1]: lower and
// below give 0, upper and above give 1.
func DeltaToSeverity(delta, lower, upper float64) float64 {
	if delta <= lower {
		return 0
	}
	if delta >= upper {
		return 1
	}
	return (delta - lower) / (upper - lower)
}

// SeverityLabel buckets a severity score.
func SeverityLabel(score float64) string {
	switch {
	case score >= 0.80:
		return SeverityCritical
	case score >= 0.50:
		return SeverityHigh
	case score >= 0.20:
		return SeverityModerate
	default:
		return SeverityLow
	}
}

// BoxDeltaStats returns the mean and maximum of max(0, vC - vB) over the
// pixels of b, clipped to the image.
func BoxDeltaStats(base, cand *HSVImage, b Box) (avg, peak float64) {
	x0, y0 := max(0, b.X), max(0, b.Y)
	x1, y1 := min(cand.Width, b.X+b.Width), min(cand.Height, b.Y+b.Height)

	var sum float64
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := y*cand.Width + x
			dv := math.Max(0, cand.Pix[i].V-base.Pix[i].V)
			sum += dv
			if dv > peak {
				peak = dv
			}
			n++
		}
	}
	if n > 0 {
		avg = sum / float64(n)
	}
	return avg, peak
}

// boxSeverity scores one box. The reported severity is floored so a detected
// box is never reported at zero; the label is taken from the unfloored score.
func boxSeverity(avgDelta float64, t params.Thresholds) (severity float64, label string) {
	raw := DeltaToSeverity(avgDelta, t.SeverityLower, t.SeverityUpper)
	return math.Max(raw, t.SeverityFloor), SeverityLabel(raw)
}
