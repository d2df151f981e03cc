package thermal

import (
	"image"

	"github.com/ironsheep/thermal-inspect-mcp/internal/params"
)

// BoxInfo is a surviving box enriched with geometry, labels and severity.
type BoxInfo struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`

	AreaFrac          float64 `json:"areaFrac"`
	Aspect            float64 `json:"aspect"`
	OverlapCenterFrac float64 `json:"overlapCenterFrac"`

	// Label is the annotation label ("Loose joint", "Wire overload", "Point overload").
	Label string `json:"label"`

	// BoxFault is the UI fault category; see BoxFaultLabel.
	BoxFault Fault `json:"boxFault"`

	Severity      float64 `json:"severity"`
	SeverityLabel string  `json:"severityLabel"`

	// AvgDeltaV and MaxDeltaV are value-channel increases over the box.
	AvgDeltaV float64 `json:"avgDeltaV"`
	MaxDeltaV float64 `json:"maxDeltaV"`
}

// Result is the outcome of one baseline/candidate comparison.
//
// Field order is the serialized order.
type Result struct {
	Prob                 float64   `json:"prob"`
	HistDistance         float64   `json:"histDistance"`
	DV95                 float64   `json:"dv95"`
	WarmFraction         float64   `json:"warmFraction"`
	ImageWidth           int       `json:"imageWidth"`
	ImageHeight          int       `json:"imageHeight"`
	Boxes                []Box     `json:"boxes"`
	BoxInfo              []BoxInfo `json:"boxInfo"`
	FaultType            Fault     `json:"faultType"`
	OverallSeverity      float64   `json:"overallSeverity"`
	OverallSeverityLabel string    `json:"overallSeverityLabel"`
}

// Compare runs the full detection pipeline on a co-registered image pair.
//
// Parameters:
//   - baseline: reference image; must have the candidate's dimensions.
//   - candidate: image under inspection.
//   - p: detection parameters; invalid values are clamped (see params.Set.Resolve).
//   - valid: optional validity mask (nil admits every pixel). Invalid pixels
//     are excluded from histograms, sampling and the warm mask.
//
// Returns a *ShapeError for zero-area images or mismatched dimensions.
// Degenerate inputs (no warm pixels, empty samples) produce a well-defined
// result rather than an error.
func Compare(baseline, candidate image.Image, p params.Set, valid *Mask) (*Result, error) {
	cb, bb := candidate.Bounds(), baseline.Bounds()
	w, h := cb.Dx(), cb.Dy()
	if w <= 0 || h <= 0 {
		return nil, &ShapeError{Precondition: "candidate has pixels", Err: ErrEmptyImage}
	}
	if bb.Dx() != w || bb.Dy() != h {
		return nil, &ShapeError{
			Precondition: "baseline matches candidate",
			Want:         [2]int{w, h},
			Got:          [2]int{bb.Dx(), bb.Dy()},
			Err:          ErrDimensionMismatch,
		}
	}
	if valid != nil && (valid.Width != w || valid.Height != h) {
		return nil, &ShapeError{
			Precondition: "validity mask matches candidate",
			Want:         [2]int{w, h},
			Got:          [2]int{valid.Width, valid.Height},
			Err:          ErrMaskMismatch,
		}
	}

	t := p.Resolve()
	base := NewHSVImage(baseline)
	cand := NewHSVImage(candidate)

	validTotal := w * h
	if valid != nil {
		if n := valid.Count(); n > 0 {
			validTotal = n
		}
	}

	histBase := BuildHistogram(base, t.HueBins, t.SatBins, valid)
	histCand := BuildHistogram(cand, t.HueBins, t.SatBins, valid)
	histBase.Normalize()
	histCand.Normalize()
	histDist := HistogramDistance(histBase, histCand)

	dv95 := Percentile(SampleBrightnessDelta(base, cand, t.SampleEvery, valid), t.Percentile)

	warm := BuildWarmMask(base, cand, t, valid)
	warmFrac := float64(warm.Count()) / float64(validTotal)

	regions := ExtractRegions(warm, MinRegionPixels(t, validTotal))
	raw := make([]Box, len(regions))
	for i, r := range regions {
		raw[i] = r.Box
	}

	// The image-level fault is decided on the raw boxes, before deduplication.
	faultType := ClassifyImage(w, h, raw, t)
	kept := Deduplicate(raw, t.ContainmentRatio)
	_, prob := Score(histDist, dv95, warmFrac, t)

	infos := make([]BoxInfo, 0, len(kept))
	for _, b := range kept {
		if valid != nil && !anyValid(valid, b) {
			continue
		}
		g := Measure(w, h, b)
		avg, peak := BoxDeltaStats(base, cand, b)
		sev, label := boxSeverity(avg, t)
		infos = append(infos, BoxInfo{
			X: b.X, Y: b.Y, W: b.Width, H: b.Height,
			AreaFrac:          g.AreaFrac,
			Aspect:            g.Aspect,
			OverlapCenterFrac: g.CenterOverlap,
			Label:             AnnotationLabel(g, t).Title(),
			BoxFault:          BoxFaultLabel(g, t),
			Severity:          sev,
			SeverityLabel:     label,
			AvgDeltaV:         avg,
			MaxDeltaV:         peak,
		})
	}

	overall := 0.0
	if len(raw) > 0 {
		overall = DeltaToSeverity(dv95, t.SeverityLower, t.SeverityUpper)
	}

	return &Result{
		Prob:                 prob,
		HistDistance:         histDist,
		DV95:                 dv95,
		WarmFraction:         warmFrac,
		ImageWidth:           w,
		ImageHeight:          h,
		Boxes:                kept,
		BoxInfo:              infos,
		FaultType:            faultType,
		OverallSeverity:      overall,
		OverallSeverityLabel: SeverityLabel(overall),
	}, nil
}

// anyValid reports whether b covers at least one valid pixel.
func anyValid(valid *Mask, b Box) bool {
	for y := b.Y; y < b.Y+b.Height; y++ {
		for x := b.X; x < b.X+b.Width; x++ {
			if valid.At(x, y) {
				return true
			}
		}
	}
	return false
}
