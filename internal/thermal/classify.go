package thermal

import (
	"math"

	"github.com/ironsheep/thermal-inspect-mcp/internal/params"
)

// Fault is a recognised fault category.
type Fault string

const (
	FaultNone          Fault = "none"
	FaultLooseJoint    Fault = "loose joint"
	FaultWireOverload  Fault = "wire overload"
	FaultPointOverload Fault = "point overload"
)

// Title returns the capitalised form used on annotation labels,
// e.g. "Loose joint".
func (f Fault) Title() string {
	if f == "" {
		return ""
	}
	s := []byte(f)
	if s[0] >= 'a' && s[0] <= 'z' {
		s[0] -= 'a' - 'A'
	}
	return string(s)
}

// Geometry holds the shape metrics the classifier works from.
type Geometry struct {
	Box

	// AreaFrac is the box area divided by the image area.
	AreaFrac float64

	// Aspect is long side / short side, with the short side floored at 1.
	Aspect float64

	// CenterOverlap is the fraction of the box area inside the central third
	// of the image.
	CenterOverlap float64
}

// centralRect returns the central third of a width × height image.
func centralRect(width, height int) Box {
	x0, y0 := int(float64(width)*0.33), int(float64(height)*0.33)
	x1, y1 := int(float64(width)*0.67), int(float64(height)*0.67)
	return Box{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Measure computes the classification geometry of b in a width × height image.
func Measure(width, height int, b Box) Geometry {
	g := Geometry{Box: b}
	area := float64(b.Area())
	if total := float64(width * height); total > 0 {
		g.AreaFrac = area / total
	}
	short := math.Max(1, float64(min(b.Width, b.Height)))
	g.Aspect = float64(max(b.Width, b.Height)) / short
	if area > 0 {
		g.CenterOverlap = float64(b.Intersection(centralRect(width, height))) / area
	}
	return g
}

// ClassifyImage decides the image-level fault for a set of boxes.
//
// Rules, first match wins:
//  1. any box with AreaFrac >= large and CenterOverlap >= center: loose joint
//  2. the largest AreaFrac < large: point overload
//  3. any box with Aspect >= rectangular: wire overload
//  4. otherwise: none
//
// No boxes yields FaultNone. The result does not depend on box order.
func ClassifyImage(width, height int, boxes []Box, t params.Thresholds) Fault {
	if len(boxes) == 0 {
		return FaultNone
	}

	var hasLargeCentral, hasRectangular bool
	maxAreaFrac := 0.0
	for _, b := range boxes {
		g := Measure(width, height, b)
		maxAreaFrac = math.Max(maxAreaFrac, g.AreaFrac)
		if g.Aspect >= t.RectangularAspect {
			hasRectangular = true
		}
		if g.AreaFrac >= t.LargeArea && g.CenterOverlap >= t.CenterOverlap {
			hasLargeCentral = true
		}
	}

	switch {
	case hasLargeCentral:
		return FaultLooseJoint
	case maxAreaFrac < t.LargeArea:
		return FaultPointOverload
	case hasRectangular:
		return FaultWireOverload
	default:
		return FaultNone
	}
}

// AnnotationLabel is the per-box label drawn on annotations ("label" field).
func AnnotationLabel(g Geometry, t params.Thresholds) Fault {
	switch {
	case g.AreaFrac >= t.LooseArea:
		return FaultLooseJoint
	case g.Aspect >= t.RectangularAspect:
		return FaultWireOverload
	default:
		return FaultPointOverload
	}
}

// BoxFaultLabel is the per-box fault the UI filters on ("boxFault" field).
//
// Unlike AnnotationLabel, a loose joint also needs the box to sit over the
// image centre or to be large.
func BoxFaultLabel(g Geometry, t params.Thresholds) Fault {
	switch {
	case g.AreaFrac >= t.LooseArea && (g.CenterOverlap >= t.CenterOverlap || g.AreaFrac >= t.LargeArea):
		return FaultLooseJoint
	case g.Aspect >= t.RectangularAspect:
		return FaultWireOverload
	default:
		return FaultPointOverload
	}
}
