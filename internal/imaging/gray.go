package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/floats"

	"blob-tools/internal/blob"
)

// ToGrid converts an image to the grayscale float grid the detection core
// consumes. Color images collapse to BT.601 luminance and samples are scaled
// to [0,1]; an 8-bit white pixel maps to exactly 1.0. The source image is
// not modified.
func ToGrid(img image.Image) *blob.Grid {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	g := blob.NewGrid(w, h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w*4]
		for x := 0; x < w; x++ {
			// Grayscale output has R == G == B; read the red channel.
			g.Pix[y*w+x] = float64(row[x*4]) / 255
		}
	}
	return g
}

// GridStats summarizes the intensity distribution of a grid. Reported next
// to detection results so callers can sanity-check thresholds against the
// actual dynamic range.
type GridStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Stats computes min, max, and mean intensity of a non-empty grid.
func Stats(g *blob.Grid) GridStats {
	return GridStats{
		Min:  floats.Min(g.Pix),
		Max:  floats.Max(g.Pix),
		Mean: floats.Sum(g.Pix) / float64(len(g.Pix)),
	}
}
