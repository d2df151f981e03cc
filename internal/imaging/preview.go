package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/thermal-inspect-mcp/internal/thermal"
)

// Preview is a PNG rendition of one box.
type Preview struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// BoxPreview crops box out of img and encodes it as a base64 PNG.
//
// The box must lie inside the image and have a positive area. A scale other
// than 1 resizes the crop with a Lanczos filter; non-positive scales are
// treated as 1.
func BoxPreview(img image.Image, box thermal.Box, scale float64) (*Preview, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if box.Width <= 0 || box.Height <= 0 {
		return nil, fmt.Errorf("invalid box %dx%d: width and height must be positive", box.Width, box.Height)
	}
	if box.X < 0 || box.Y < 0 || box.X+box.Width > w || box.Y+box.Height > h {
		return nil, fmt.Errorf("box (%d,%d %dx%d) outside image bounds %dx%d",
			box.X, box.Y, box.Width, box.Height, w, h)
	}

	r := image.Rect(box.X, box.Y, box.X+box.Width, box.Y+box.Height).Add(bounds.Min)
	cropped := imaging.Crop(img, r)

	if scale != 1.0 && scale > 0 {
		newWidth := max(1, int(float64(cropped.Bounds().Dx())*scale))
		newHeight := max(1, int(float64(cropped.Bounds().Dy())*scale))
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cropped, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &Preview{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
