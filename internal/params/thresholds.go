package params

import "math"

// Upper bounds for the integer parameters. Bin counts beyond these resolve
// no further detail on 8-bit input; counts are capped so float to int
// conversion never overflows.
const (
	MaxHueBins = 360
	MaxSatBins = 256
	MaxCount   = math.MaxInt32
)

// Thresholds is the sanitized, typed view of a Set used by the detector.
//
// Out-of-range values are clamped or replaced with their defaults rather than
// rejected, so a partially corrupt Set still produces a result.
type Thresholds struct {
	HueBins     int
	SatBins     int
	SampleEvery int

	WarmHueLow  float64
	WarmHueHigh float64
	WarmSat     float64
	WarmVal     float64
	Contrast    float64

	MinAreaRatio  float64
	MinAreaPixels int

	HistScale  float64
	WarmScale  float64
	DV95Scale  float64
	Percentile float64

	LooseArea         float64
	LargeArea         float64
	CenterOverlap     float64
	RectangularAspect float64

	SeverityLower float64
	SeverityUpper float64
	SeverityFloor float64

	ContainmentRatio float64
}

// Resolve converts s into Thresholds, applying the documented clamps.
func (s Set) Resolve() Thresholds {
	t := Thresholds{
		HueBins:     boundedInt(s.Get(HueBins), MaxHueBins),
		SatBins:     boundedInt(s.Get(SatBins), MaxSatBins),
		SampleEvery: boundedInt(s.Get(SampleEvery), MaxCount),

		WarmHueLow:  clamp01(s.Get(WarmHueLow)),
		WarmHueHigh: clamp01(s.Get(WarmHueHigh)),
		WarmSat:     clamp01(s.Get(WarmSatThreshold)),
		WarmVal:     clamp01(s.Get(WarmValThreshold)),
		Contrast:    clamp01(s.Get(ContrastThreshold)),

		MinAreaRatio:  math.Max(0, s.Get(MinAreaRatio)),
		MinAreaPixels: boundedInt(s.Get(MinAreaPixels), MaxCount),

		HistScale:  s.Get(HistDistanceScale),
		WarmScale:  s.Get(WarmFractionScale),
		DV95Scale:  s.Get(DV95Scale),
		Percentile: math.Min(0.999, math.Max(0.5, s.Get(DV95Percentile))),

		CenterOverlap:     clamp01(s.Get(CenterOverlapThreshold)),
		RectangularAspect: math.Max(1, s.Get(RectangularAspectThreshold)),

		SeverityLower: s.Get(SeverityLowerDelta),
		SeverityUpper: s.Get(SeverityUpperDelta),
		SeverityFloor: clamp01(s.Get(SeverityFloor)),

		ContainmentRatio: s.Get(ContainmentRatio),
	}

	if t.WarmHueHigh < t.WarmHueLow {
		t.WarmHueHigh = t.WarmHueLow
	}
	if t.HistScale <= 1e-6 {
		t.HistScale = Default(HistDistanceScale)
	}
	t.LooseArea = math.Max(0, s.Get(LooseAreaThreshold))
	t.LargeArea = math.Max(t.LooseArea, s.Get(LargeAreaThreshold))
	if t.SeverityUpper <= t.SeverityLower {
		t.SeverityUpper = t.SeverityLower + 1e-6
	}
	if t.ContainmentRatio <= 0 || t.ContainmentRatio > 1 {
		t.ContainmentRatio = Default(ContainmentRatio)
	}
	return t
}

// boundedInt rounds half to even and clamps the result to [1, hi]. The
// clamp happens before conversion so huge values saturate at hi.
func boundedInt(v float64, hi int) int {
	if math.IsNaN(v) {
		return 1
	}
	n := math.RoundToEven(math.Min(v, float64(hi)))
	if n < 1 {
		return 1
	}
	return int(n)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
