package blob

import "math"

// gaussianKernel returns a normalized 1-D Gaussian kernel for the given
// standard deviation. The kernel covers [-r, r] with r = ceil(4*sigma), so
// the truncated tail mass is negligible; index i maps to offset i-r.
func gaussianKernel(sigma float64) []float64 {
	r := int(math.Ceil(4 * sigma))
	if r < 1 {
		r = 1
	}
	k := make([]float64, 2*r+1)
	var sum float64
	inv := 1 / (2 * sigma * sigma)
	for i := -r; i <= r; i++ {
		v := math.Exp(-float64(i*i) * inv)
		k[i+r] = v
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// smooth returns a Gaussian-smoothed copy of g.
//
// The 2-D convolution is separated into a horizontal and a vertical 1-D
// pass, turning the O(r²) per-pixel cost into O(r). Border pixels replicate
// the nearest edge sample (clamped indexing), so no pass reads out of
// bounds and a constant image is exactly invariant under smoothing.
func smooth(g *Grid, sigma float64) *Grid {
	k := gaussianKernel(sigma)
	r := len(k) / 2

	// Horizontal pass.
	tmp := NewGrid(g.W, g.H)
	for y := 0; y < g.H; y++ {
		row := g.Pix[y*g.W : (y+1)*g.W]
		out := tmp.Pix[y*g.W : (y+1)*g.W]
		for x := 0; x < g.W; x++ {
			var acc float64
			for i := -r; i <= r; i++ {
				acc += k[i+r] * row[clamp(x+i, 0, g.W-1)]
			}
			out[x] = acc
		}
	}

	// Vertical pass.
	dst := NewGrid(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			var acc float64
			for i := -r; i <= r; i++ {
				acc += k[i+r] * tmp.Pix[clamp(y+i, 0, g.H-1)*g.W+x]
			}
			dst.Pix[y*g.W+x] = acc
		}
	}
	return dst
}

// laplacian applies the discrete 5-point Laplacian to g with replicated
// borders and scales the result by -sigma², producing the scale-normalized
// Laplacian-of-Gaussian response when g is a Gaussian-smoothed image. The
// sign flip makes bright-on-dark blob centers positive maxima.
func laplacian(g *Grid, sigma float64) *Grid {
	dst := NewGrid(g.W, g.H)
	norm := -sigma * sigma
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			lap := g.atClamped(y-1, x) + g.atClamped(y+1, x) +
				g.atClamped(y, x-1) + g.atClamped(y, x+1) -
				4*g.Pix[y*g.W+x]
			dst.Pix[y*g.W+x] = norm * lap
		}
	}
	return dst
}
