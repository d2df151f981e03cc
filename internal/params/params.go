// Package params holds the tunable detection thresholds shared by the
// thermal detector and the calibrator.
//
// A Set is an immutable value: every method that changes parameters returns a
// new Set and leaves the receiver untouched. The default Set is built once at
// package initialisation and is never mutated, so it is safe to share between
// goroutines without locking.
//
// # Keys
//
// Parameters are addressed by flat string keys (for example
// "warm_sat_threshold"). Every known key has a documented default; reading a
// key that a Set does not carry returns the default. Overrides for unknown keys
// are ignored so that a stale or foreign parameter file never breaks a run.
//
// Tests use testify, as in the other numeric packages.
package params

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Parameter keys.
const (
	HueBins                    = "h_bins"
	SatBins                    = "s_bins"
	SampleEvery                = "sample_every"
	WarmHueLow                 = "warm_hue_low"
	WarmHueHigh                = "warm_hue_high"
	WarmSatThreshold           = "warm_sat_threshold"
	WarmValThreshold           = "warm_val_threshold"
	ContrastThreshold          = "contrast_threshold"
	MinAreaRatio               = "min_area_ratio"
	MinAreaPixels              = "min_area_pixels"
	HistDistanceScale          = "hist_distance_scale"
	WarmFractionScale          = "warm_fraction_scale"
	DV95Scale                  = "dv95_scale"
	DV95Percentile             = "dv95_percentile"
	LooseAreaThreshold         = "loose_area_threshold"
	LargeAreaThreshold         = "large_area_threshold"
	CenterOverlapThreshold     = "center_overlap_threshold"
	RectangularAspectThreshold = "rectangular_aspect_threshold"
	SeverityLowerDelta         = "severity_lower_delta"
	SeverityUpperDelta         = "severity_upper_delta"
	SeverityFloor              = "severity_floor"
	ContainmentRatio           = "containment_ratio"
)

var defaultValues = map[string]float64{
	HueBins:                    30,
	SatBins:                    32,
	SampleEvery:                10,
	WarmHueLow:                 0.17,
	WarmHueHigh:                0.95,
	WarmSatThreshold:           0.30,
	WarmValThreshold:           0.40,
	ContrastThreshold:          0.15,
	MinAreaRatio:               0.001,
	MinAreaPixels:              32,
	HistDistanceScale:          0.5,
	WarmFractionScale:          2.0,
	DV95Scale:                  1.0,
	DV95Percentile:             0.95,
	LooseAreaThreshold:         0.10,
	LargeAreaThreshold:         0.30,
	CenterOverlapThreshold:     0.40,
	RectangularAspectThreshold: 2.0,
	SeverityLowerDelta:         0.15,
	SeverityUpperDelta:         0.50,
	SeverityFloor:              0.05,
	ContainmentRatio:           0.5,
}

var defaultSet = Set{values: copyValues(defaultValues)}

// Set is an immutable collection of named detection parameters.
//
// The zero Set behaves like Defaults().
type Set struct {
	values map[string]float64
}

// Delta maps parameter keys to signed adjustments.
type Delta map[string]float64

// Defaults returns the default parameter set.
func Defaults() Set {
	return defaultSet
}

// Keys returns every known parameter key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaultValues))
	for k := range defaultValues {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Known reports whether key is a recognised parameter.
func Known(key string) bool {
	_, ok := defaultValues[key]
	return ok
}

// Default returns the documented default for key, or 0 for unknown keys.
func Default(key string) float64 {
	return defaultValues[key]
}

// Get returns the value for key, falling back to its default.
func (s Set) Get(key string) float64 {
	if v, ok := s.values[key]; ok {
		return v
	}
	return defaultValues[key]
}

// With returns a new Set with overrides applied on top of s.
//
// Unknown keys and non-finite values are ignored.
func (s Set) With(overrides map[string]float64) Set {
	values := s.Map()
	for k, v := range overrides {
		if !Known(k) || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values[k] = v
	}
	return Set{values: values}
}

// Apply returns a new Set with each delta added to the current value.
func (s Set) Apply(d Delta) Set {
	values := s.Map()
	for k, dv := range d {
		if !Known(k) || math.IsNaN(dv) || math.IsInf(dv, 0) {
			continue
		}
		values[k] = s.Get(k) + dv
	}
	return Set{values: values}
}

// Map returns a copy of every parameter value, defaults included.
func (s Set) Map() map[string]float64 {
	values := copyValues(defaultValues)
	for k, v := range s.values {
		values[k] = v
	}
	return values
}

// MarshalJSON encodes the full parameter map with keys in sorted order.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// UnmarshalJSON decodes a flat JSON object of overrides on top of the defaults.
func (s *Set) UnmarshalJSON(data []byte) error {
	overrides, err := ParseOverrides(data)
	if err != nil {
		return err
	}
	*s = Defaults().With(overrides)
	return nil
}

// ParseOverrides decodes a JSON object into numeric overrides.
//
// Non-numeric members are skipped, matching the lenient loader the detector
// has always used for parameter files. A payload that is not a JSON object is
// an error.
func ParseOverrides(data []byte) (map[string]float64, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid parameter payload: %w", err)
	}
	overrides := make(map[string]float64, len(raw))
	for k, v := range raw {
		if f, ok := v.(float64); ok {
			overrides[k] = f
		}
	}
	return overrides, nil
}

func copyValues(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
