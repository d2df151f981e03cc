package calibration

import (
	"errors"
	"image"

	"github.com/ironsheep/thermal-inspect-mcp/internal/params"
	"github.com/ironsheep/thermal-inspect-mcp/internal/thermal"
)

// ErrNoFeedback is returned when a feedback bundle carries no boxes at all.
var ErrNoFeedback = errors.New("feedback has no added or removed boxes")

// Feedback is one calibration request: the parameters the reviewed detection
// ran with and the boxes the reviewer corrected.
type Feedback struct {
	Parameters   params.Set    `json:"parameters"`
	AddedBoxes   []FeedbackBox `json:"addedBoxes"`
	RemovedBoxes []FeedbackBox `json:"removedBoxes"`
}

// Report is the outcome of a calibration run.
type Report struct {
	// ParameterUpdates holds signed deltas, not absolute values.
	ParameterUpdates params.Delta `json:"parameter_updates"`
	Notes            string       `json:"notes"`
	AddedCount       int          `json:"addedCount"`
	RemovedCount     int          `json:"removedCount"`
}

// Calibrate measures every feedback box on candidate and proposes parameter
// deltas.
//
// Boxes that fall entirely outside the image are skipped and not counted.
// A zero-area candidate is a *thermal.ShapeError; a bundle with no boxes is
// ErrNoFeedback.
func Calibrate(candidate image.Image, fb Feedback) (*Report, error) {
	if len(fb.AddedBoxes) == 0 && len(fb.RemovedBoxes) == 0 {
		return nil, ErrNoFeedback
	}
	b := candidate.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &thermal.ShapeError{Precondition: "candidate has pixels", Err: thermal.ErrEmptyImage}
	}

	img := thermal.NewHSVImage(candidate)
	mean := img.MeanValue()
	low, high := fb.Parameters.Get(params.WarmHueLow), fb.Parameters.Get(params.WarmHueHigh)

	measure := func(boxes []FeedbackBox) []RegionMetrics {
		out := make([]RegionMetrics, 0, len(boxes))
		for _, box := range boxes {
			if m, ok := MeasureRegion(img, box, mean, low, high); ok {
				out = append(out, m)
			}
		}
		return out
	}
	added := measure(fb.AddedBoxes)
	removed := measure(fb.RemovedBoxes)

	return &Report{
		ParameterUpdates: ProposeDeltas(added, removed, fb.Parameters),
		Notes:            Summarize(added, removed),
		AddedCount:       len(added),
		RemovedCount:     len(removed),
	}, nil
}
