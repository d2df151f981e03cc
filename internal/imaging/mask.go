package imaging

import (
	"fmt"

	"github.com/ironsheep/thermal-inspect-mcp/internal/thermal"
)

// LoadMask loads a validity mask image through cache.
//
// Any non-black pixel is valid. The mask is resampled to width × height
// first when its dimensions differ, so a mask produced at another resolution
// still lines up with the candidate. Resampling is nearest-neighbour so the
// valid/invalid boundary stays sharp. A non-positive width or height keeps
// the mask at its native size.
func LoadMask(cache *ImageCache, path string, width, height int) (*thermal.Mask, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load mask: %w", err)
	}
	return thermal.MaskFromImage(matchSizeNearest(img, width, height)), nil
}
