package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropRegion extracts the rectangle (x1,y1)-(x2,y2) from an image, with
// (x1,y1) inclusive and (x2,y2) exclusive, optionally rescaling the result.
// A scale of 1 (or 0, the unset zero value) leaves the crop at its native
// size; other positive factors resample with a Lanczos filter.
//
// Cropping a region of interest before detection bounds the cost of the
// scale-space passes, which grow with image area.
func CropRegion(img image.Image, x1, y1, x2, y2 int, scale float64) (image.Image, error) {
	bounds := img.Bounds()
	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid region: x1 must be < x2 and y1 < y2")
	}

	cropped := imaging.Crop(img, image.Rect(x1, y1, x2, y2))

	if scale > 0 && scale != 1.0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %g collapses the region to zero pixels", scale)
		}
		return imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos), nil
	}
	return cropped, nil
}
