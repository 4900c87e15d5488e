package blob

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DetectLoG finds bright-on-dark blobs with the Laplacian-of-Gaussian
// detector: the image is Gaussian-smoothed at each of NumSigma linearly
// spaced scales, the scale-normalized Laplacian forms the response cube, and
// 3-D local maxima above Threshold become blobs of radius sigma*sqrt(2).
//
// This is the most accurate of the three detectors and the slowest, since
// the smoothing kernel grows with sigma. Dark-on-bright blobs produce
// negative responses and are not reported.
func DetectLoG(g *Grid, p LoGParams) ([]Blob, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	cube := buildCube(linearSigmas(p.MinSigma, p.MaxSigma, p.NumSigma), func(_ int, sigma float64) *Grid {
		return laplacian(smooth(g, sigma), sigma)
	})

	return finalize(cube.localMaxima(p.Threshold), math.Sqrt2, p.Overlap), nil
}

// linearSigmas returns n equally spaced scales covering [min, max]
// inclusive. A single-scale request returns just min.
func linearSigmas(min, max float64, n int) []float64 {
	if n == 1 {
		return []float64{min}
	}
	return floats.Span(make([]float64, n), min, max)
}
