package calibration

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/thermal-inspect-mcp/internal/params"
)

// Step bounds per parameter family.
const (
	tolerance = 0.01 // saturation, value and contrast gaps smaller than this are ignored

	thresholdStepMin = 0.005
	contrastStepMin  = 0.003
	thresholdStepMax = 0.05

	pixelStepMin = 5.0
	pixelStepMax = 50.0

	ratioStepMin = 0.0005
	ratioStepMax = 0.005

	hueStepMax = 0.01

	// warmMajority is the warm fraction above which a region's hue moves the
	// hue window.
	warmMajority = 0.5

	// floorMargin widens the area floors a false positive must clear before
	// they are raised.
	floorMargin = 1.2

	negligible = 1e-6
)

// adjuster accumulates deltas against a shadow copy of the parameters.
type adjuster struct {
	shadow params.Set
	delta  params.Delta
}

func newAdjuster(current params.Set) *adjuster {
	return &adjuster{shadow: current, delta: params.Delta{}}
}

func (a *adjuster) get(key string) float64 {
	return a.shadow.Get(key)
}

func (a *adjuster) add(key string, dv float64) {
	if dv == 0 {
		return
	}
	a.delta[key] += dv
	a.shadow = a.shadow.Apply(params.Delta{key: dv})
}

// missed lowers the thresholds a region that should have been detected fell
// short of.
func (a *adjuster) missed(m RegionMetrics) {
	if gap := a.get(params.WarmSatThreshold) - m.MeanSaturation; gap > tolerance {
		a.add(params.WarmSatThreshold, -clamp(gap/2, thresholdStepMin, thresholdStepMax))
	}
	if gap := a.get(params.WarmValThreshold) - m.MeanValue; gap > tolerance {
		a.add(params.WarmValThreshold, -clamp(gap/2, thresholdStepMin, thresholdStepMax))
	}
	if gap := a.get(params.ContrastThreshold) - m.MeanDeltaValue; gap > tolerance {
		a.add(params.ContrastThreshold, -clamp(gap/2, contrastStepMin, thresholdStepMax))
	}
	if gap := a.get(params.MinAreaPixels) - m.PixelCount; gap > 1 {
		a.add(params.MinAreaPixels, -clamp(gap/4, pixelStepMin, pixelStepMax))
	}
	if gap := a.get(params.MinAreaRatio) - m.AreaRatio; gap > 0 {
		a.add(params.MinAreaRatio, -clamp(gap/2, ratioStepMin, ratioStepMax))
	}

	if m.WarmFraction < warmMajority {
		return
	}
	low, high := a.get(params.WarmHueLow), a.get(params.WarmHueHigh)
	switch {
	case m.MeanHue < 0.5 && m.MeanHue > low:
		a.add(params.WarmHueLow, math.Min(hueStepMax, (m.MeanHue-low)/2))
	case m.MeanHue >= 0.5 && m.MeanHue < high:
		a.add(params.WarmHueHigh, -math.Min(hueStepMax, (high-m.MeanHue)/2))
	}
}

// falsePositive raises the thresholds a region that should not have been
// detected cleared.
func (a *adjuster) falsePositive(m RegionMetrics) {
	if gap := m.MeanSaturation - a.get(params.WarmSatThreshold); gap >= -tolerance {
		a.add(params.WarmSatThreshold, clamp(gap/2, thresholdStepMin, thresholdStepMax))
	}
	if gap := m.MeanValue - a.get(params.WarmValThreshold); gap >= -tolerance {
		a.add(params.WarmValThreshold, clamp(gap/2, thresholdStepMin, thresholdStepMax))
	}
	if gap := m.MeanDeltaValue - a.get(params.ContrastThreshold); gap >= -tolerance {
		a.add(params.ContrastThreshold, clamp(gap/2, contrastStepMin, thresholdStepMax))
	}
	if floor := a.get(params.MinAreaPixels); m.PixelCount < floor*floorMargin {
		a.add(params.MinAreaPixels, clamp((floor-m.PixelCount)/5, pixelStepMin, pixelStepMax))
	}
	if m.AreaRatio < a.get(params.MinAreaRatio)*floorMargin {
		a.add(params.MinAreaRatio, ratioStepMin)
	}

	if m.WarmFraction < warmMajority {
		return
	}
	low, high := a.get(params.WarmHueLow), a.get(params.WarmHueHigh)
	switch {
	case m.MeanHue < low:
		a.add(params.WarmHueLow, -math.Min(hueStepMax, (low-m.MeanHue)/2))
	case m.MeanHue > high:
		a.add(params.WarmHueHigh, math.Min(hueStepMax, (m.MeanHue-high)/2))
	}
}

// result drops negligible entries.
func (a *adjuster) result() params.Delta {
	out := params.Delta{}
	for k, v := range a.delta {
		if math.Abs(v) >= negligible {
			out[k] = v
		}
	}
	return out
}

// ProposeDeltas computes parameter adjustments for measured feedback regions.
//
// Added regions are processed first, then removed regions, in the order
// given. Each adjustment sees the effect of every adjustment before it.
// Entries whose net change is below 1e-6 in magnitude are omitted; the
// result is never nil.
func ProposeDeltas(added, removed []RegionMetrics, current params.Set) params.Delta {
	a := newAdjuster(current)
	for _, m := range added {
		a.missed(m)
	}
	for _, m := range removed {
		a.falsePositive(m)
	}
	return a.result()
}

// Summarize reports region counts and the mean saturation, value and area
// ratio of each non-empty group, e.g.
//
//	added=1 removed=0 add_sat=0.812 add_val=0.640 add_area=0.004
func Summarize(added, removed []RegionMetrics) string {
	parts := []string{
		fmt.Sprintf("added=%d", len(added)),
		fmt.Sprintf("removed=%d", len(removed)),
	}
	if len(added) > 0 {
		parts = append(parts, groupSummary("add", added)...)
	}
	if len(removed) > 0 {
		parts = append(parts, groupSummary("rem", removed)...)
	}
	return strings.Join(parts, " ")
}

func groupSummary(prefix string, regions []RegionMetrics) []string {
	sat := make([]float64, len(regions))
	val := make([]float64, len(regions))
	area := make([]float64, len(regions))
	for i, m := range regions {
		sat[i], val[i], area[i] = m.MeanSaturation, m.MeanValue, m.AreaRatio
	}
	return []string{
		fmt.Sprintf("%s_sat=%s", prefix, formatMean(stat.Mean(sat, nil))),
		fmt.Sprintf("%s_val=%s", prefix, formatMean(stat.Mean(val, nil))),
		fmt.Sprintf("%s_area=%s", prefix, formatMean(stat.Mean(area, nil))),
	}
}

func formatMean(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "nan"
	}
	return fmt.Sprintf("%.3f", v)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
