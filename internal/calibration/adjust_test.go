package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/thermal-inspect-mcp/internal/params"
)

// quiet returns metrics of a missed region that already clears every default
// threshold, so it triggers no adjustment.
func quiet() RegionMetrics {
	return RegionMetrics{
		PixelCount:     1000,
		AreaRatio:      0.5,
		MeanSaturation: 0.3,
		MeanValue:      0.4,
		MeanDeltaValue: 0.15,
		WarmFraction:   0,
	}
}

func TestProposeDeltas_Quiet(t *testing.T) {
	assert.Empty(t, ProposeDeltas([]RegionMetrics{quiet()}, nil, params.Defaults()))
	assert.NotNil(t, ProposeDeltas(nil, nil, params.Defaults()))
}

func TestProposeDeltas_MissedThresholds(t *testing.T) {
	m := quiet()
	m.MeanSaturation = 0.2   // gap 0.1, step capped at 0.05
	m.MeanValue = 0.38       // gap 0.02, half of it is 0.01
	m.MeanDeltaValue = 0.145 // inside tolerance

	d := ProposeDeltas([]RegionMetrics{m}, nil, params.Defaults())
	assert.Len(t, d, 2)
	assert.InDelta(t, -0.05, d[params.WarmSatThreshold], 1e-12)
	assert.InDelta(t, -0.01, d[params.WarmValThreshold], 1e-12)
}

func TestProposeDeltas_Contrast(t *testing.T) {
	missed := quiet()
	missed.MeanDeltaValue = 0.135

	d := ProposeDeltas([]RegionMetrics{missed}, nil, params.Defaults())
	assert.InDelta(t, -0.0075, d[params.ContrastThreshold], 1e-12)

	// A false positive right at the threshold still raises it by the minimum step.
	removed := quiet()
	removed.MeanSaturation = 0
	removed.MeanValue = 0

	d = ProposeDeltas(nil, []RegionMetrics{removed}, params.Defaults())
	assert.Len(t, d, 1)
	assert.InDelta(t, 0.003, d[params.ContrastThreshold], 1e-12)
}

func TestProposeDeltas_MissedAreaFloors(t *testing.T) {
	m := quiet()
	m.PixelCount = 12    // gap 20, quarter is 5
	m.AreaRatio = 0.0004 // gap 0.0006, half is raised to the 0.0005 minimum

	d := ProposeDeltas([]RegionMetrics{m}, nil, params.Defaults())
	assert.InDelta(t, -5.0, d[params.MinAreaPixels], 1e-12)
	assert.InDelta(t, -0.0005, d[params.MinAreaRatio], 1e-12)
}

func TestProposeDeltas_MissedHueWindow(t *testing.T) {
	tests := []struct {
		name  string
		hue   float64
		key   string
		delta float64
	}{
		{"yellowish widens low bound", 0.3, params.WarmHueLow, 0.01},
		{"magenta widens high bound", 0.9, params.WarmHueHigh, -0.01},
		{"close to high bound moves half the gap", 0.94, params.WarmHueHigh, -0.005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := quiet()
			m.WarmFraction = 0.8
			m.MeanHue = tt.hue
			d := ProposeDeltas([]RegionMetrics{m}, nil, params.Defaults())
			assert.Len(t, d, 1)
			assert.InDelta(t, tt.delta, d[tt.key], 1e-12)
		})
	}

	m := quiet()
	m.WarmFraction = 0.2
	m.MeanHue = 0.3
	assert.Empty(t, ProposeDeltas([]RegionMetrics{m}, nil, params.Defaults()), "mostly cold regions leave the hue window alone")
}

func TestProposeDeltas_ShadowAccumulates(t *testing.T) {
	m := quiet()
	m.MeanSaturation = 0.2

	// First step: gap 0.1 -> -0.05. Second: gap 0.05 -> -0.025.
	d := ProposeDeltas([]RegionMetrics{m, m}, nil, params.Defaults())
	assert.InDelta(t, -0.075, d[params.WarmSatThreshold], 1e-12)
}

func TestProposeDeltas_RemovedSaturationAboveThreshold(t *testing.T) {
	m := quiet()
	m.MeanSaturation = 0.5 // 0.2 above the default threshold
	m.MeanValue = 0.1
	m.MeanDeltaValue = -0.5

	d := ProposeDeltas(nil, []RegionMetrics{m}, params.Defaults())
	assert.Len(t, d, 1)
	assert.Greater(t, d[params.WarmSatThreshold], 0.0)
	assert.InDelta(t, 0.05, d[params.WarmSatThreshold], 1e-12)
}

func TestProposeDeltas_RemovedAreaFloors(t *testing.T) {
	m := quiet()
	m.MeanSaturation = 0
	m.MeanValue = 0
	m.MeanDeltaValue = -1
	m.PixelCount = 20   // below 1.2 x 32
	m.AreaRatio = 0.001 // below 1.2 x 0.001

	d := ProposeDeltas(nil, []RegionMetrics{m}, params.Defaults())
	assert.InDelta(t, 5.0, d[params.MinAreaPixels], 1e-12)
	assert.InDelta(t, 0.0005, d[params.MinAreaRatio], 1e-12)
}

func TestProposeDeltas_RemovedHueWindow(t *testing.T) {
	base := quiet()
	base.MeanSaturation = 0
	base.MeanValue = 0
	base.MeanDeltaValue = -1
	base.WarmFraction = 1

	low := base
	low.MeanHue = 0.1
	d := ProposeDeltas(nil, []RegionMetrics{low}, params.Defaults())
	assert.InDelta(t, -0.01, d[params.WarmHueLow], 1e-12)

	high := base
	high.MeanHue = 0.98
	d = ProposeDeltas(nil, []RegionMetrics{high}, params.Defaults())
	assert.InDelta(t, 0.01, d[params.WarmHueHigh], 1e-12)
}

func TestProposeDeltas_AddedBeforeRemoved(t *testing.T) {
	added := quiet()
	added.MeanSaturation = 0.2
	added.MeanValue = 0.5
	added.MeanDeltaValue = 0.5

	// Measured against the lowered threshold of 0.25, this region sits 0.1
	// above it and raises the threshold straight back.
	removed := quiet()
	removed.MeanSaturation = 0.35
	removed.MeanValue = 0.1
	removed.MeanDeltaValue = -0.5

	d := ProposeDeltas([]RegionMetrics{added}, []RegionMetrics{removed}, params.Defaults())
	_, ok := d[params.WarmSatThreshold]
	assert.False(t, ok, "net zero adjustments are dropped")
}

func TestProposeDeltas_UsesCurrentParameters(t *testing.T) {
	m := quiet()
	m.MeanSaturation = 0.5

	current := params.Defaults().With(map[string]float64{params.WarmSatThreshold: 0.52})
	d := ProposeDeltas([]RegionMetrics{m}, nil, current)
	assert.InDelta(t, -0.01, d[params.WarmSatThreshold], 1e-12)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "added=0 removed=0", Summarize(nil, nil))

	a := RegionMetrics{MeanSaturation: 0.81, MeanValue: 0.64, AreaRatio: 0.004}
	assert.Equal(t, "added=1 removed=0 add_sat=0.810 add_val=0.640 add_area=0.004", Summarize([]RegionMetrics{a}, nil))

	r1 := RegionMetrics{MeanSaturation: 0.2, MeanValue: 0.5, AreaRatio: 0.01}
	r2 := RegionMetrics{MeanSaturation: 0.4, MeanValue: 0.7, AreaRatio: 0.03}
	assert.Equal(t,
		"added=1 removed=2 add_sat=0.810 add_val=0.640 add_area=0.004 rem_sat=0.300 rem_val=0.600 rem_area=0.020",
		Summarize([]RegionMetrics{a}, []RegionMetrics{r1, r2}))
}
