package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// MatchSize returns src resampled to width × height.
//
// When src already has those dimensions it is returned unchanged. Otherwise
// it is resized with a Lanczos filter; the aspect ratio is not preserved,
// since the two captures are assumed to frame the same scene.
func MatchSize(src image.Image, width, height int) image.Image {
	return resample(src, width, height, imaging.Lanczos)
}

// matchSizeNearest is MatchSize with nearest-neighbour sampling, for binary
// images such as validity masks where interpolated edge values would be
// misread as valid.
func matchSizeNearest(src image.Image, width, height int) image.Image {
	return resample(src, width, height, imaging.NearestNeighbor)
}

func resample(src image.Image, width, height int, filter imaging.ResampleFilter) image.Image {
	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return src
	}
	if width <= 0 || height <= 0 {
		return src
	}
	return imaging.Resize(src, width, height, filter)
}
