// Package thermal compares a baseline and a candidate thermal image of the
// same equipment and reports regions whose heat signature changed.
//
// The detector is rule based. Each run is a pure function of the two images,
// an optional validity mask and a params.Set:
//
//  1. Color model: every pixel of both images is converted to HSV.
//  2. Histogram comparison: normalized hue/saturation histograms of both
//     images are compared with an L2 distance.
//  3. Brightness sampling: a deterministic subset of pixels yields the
//     percentile (dv95) of the value-channel increase.
//  4. Warm mask: a pixel is warm when its hue is red/yellow, it is saturated
//     and bright, and it is noticeably brighter than in the baseline.
//  5. Regions: 4-connected components of the warm mask above an area floor
//     become bounding boxes.
//  6. Deduplication: boxes mostly contained in another box are dropped.
//  7. Classification: box geometry maps to loose joint, wire overload or
//     point overload.
//  8. Severity: brightness deltas map to a [0,1] score and a label.
//  9. Probability: histogram distance, dv95 and warm fraction are combined
//     into a logistic detection probability.
//
// # Coordinate System
//
// Boxes are (X, Y, Width, Height) in candidate pixel coordinates with the
// origin at the top-left corner. A box never extends outside the image.
//
// # Reproducibility
//
// Per-pixel stages run rows in parallel, but every row writes only its own
// slice range and histogram accumulation, brightness sampling and flood fill
// are sequential in row-major order, so results are identical across runs
// and machines.
//
// # Testing
//
// Tests of the numeric packages (thermal, params, calibration, config) use
// testify's require and assert, with InDelta for float results. Tests of the
// I/O facing packages (imaging, server) use the standard testing package.
package thermal
