// Package calibration turns human feedback on detections into parameter
// adjustments.
//
// A reviewer marks boxes the detector missed ("added") and boxes it should
// not have reported ("removed"). Each box is measured against the candidate
// image alone: absolute warmth matters here, not the change from a baseline.
// Every measured region then nudges the thresholds that decided its fate:
//
//   - a missed region lowers the saturation, value and contrast thresholds
//     and the area floors it fell short of, and widens the warm hue window
//     towards its mean hue
//   - a false positive raises the thresholds it cleared and narrows the hue
//     window away from its mean hue
//
// Steps are half the gap, bounded per parameter family, so one piece of
// feedback moves the detector part way without overshooting. Adjustments
// accumulate on a shadow copy of the parameters: added regions first, then
// removed regions, each seeing the effect of those before it.
//
// The result is a params.Delta, not a new parameter set. Callers merge it
// into whatever set they persist with params.Set.Apply.
//
// # Testing
//
// Tests of the numeric packages (thermal, params, calibration, config) use
// testify's require and assert, with InDelta for float results. Tests of the
// I/O facing packages (imaging, server) use the standard testing package.
package calibration
