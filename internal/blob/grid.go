package blob

// Grid is a dense grayscale raster stored row-major in a single contiguous
// slice, which keeps the convolution and box-filter passes cache-friendly.
// Pixel (y, x) lives at Pix[y*W+x]. Detection functions only read the Grid.
type Grid struct {
	W, H int
	Pix  []float64
}

// NewGrid allocates a zero-filled grid of the given dimensions.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Pix: make([]float64, w*h)}
}

// At returns the sample at row y, column x. Panics on out-of-range indices,
// matching slice semantics.
func (g *Grid) At(y, x int) float64 {
	if y < 0 || y >= g.H || x < 0 || x >= g.W {
		panic("blob: grid index out of range")
	}
	return g.Pix[y*g.W+x]
}

// Set stores v at row y, column x.
func (g *Grid) Set(y, x int, v float64) {
	if y < 0 || y >= g.H || x < 0 || x >= g.W {
		panic("blob: grid index out of range")
	}
	g.Pix[y*g.W+x] = v
}

// atClamped reads (y, x) with indices clamped to the grid, replicating the
// border pixel. This is the edge policy for all derivative stencils.
func (g *Grid) atClamped(y, x int) float64 {
	return g.Pix[clamp(y, 0, g.H-1)*g.W+clamp(x, 0, g.W-1)]
}

// Empty reports whether the grid has no pixels.
func (g *Grid) Empty() bool {
	return g == nil || g.W == 0 || g.H == 0
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution and stencil operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// integralImage is a summed-area table: sum[(y)*(w+1)+x] holds the sum of
// all grid samples in rows [0,y) and columns [0,x). After the one-time
// prefix-sum pass, any axis-aligned rectangular sum costs four lookups,
// which is what makes determinant-of-Hessian responses scale-independent.
type integralImage struct {
	w, h int
	sum  []float64
}

// newIntegral builds the summed-area table for g.
func newIntegral(g *Grid) *integralImage {
	ii := &integralImage{w: g.W, h: g.H, sum: make([]float64, (g.W+1)*(g.H+1))}
	stride := g.W + 1
	for y := 0; y < g.H; y++ {
		var rowSum float64
		for x := 0; x < g.W; x++ {
			rowSum += g.Pix[y*g.W+x]
			ii.sum[(y+1)*stride+(x+1)] = ii.sum[y*stride+(x+1)] + rowSum
		}
	}
	return ii
}

// boxSum returns the sum over rows [y0,y1) and columns [x0,x1), with the
// rectangle clipped to the image. A fully clipped-away rectangle sums to 0.
func (ii *integralImage) boxSum(y0, x0, y1, x1 int) float64 {
	y0 = clamp(y0, 0, ii.h)
	y1 = clamp(y1, 0, ii.h)
	x0 = clamp(x0, 0, ii.w)
	x1 = clamp(x1, 0, ii.w)
	if y0 >= y1 || x0 >= x1 {
		return 0
	}
	stride := ii.w + 1
	return ii.sum[y1*stride+x1] - ii.sum[y0*stride+x1] - ii.sum[y1*stride+x0] + ii.sum[y0*stride+x0]
}

// boxMeanAt returns the mean over the square box of half-side `half`
// centered at (cy, cx). The center is first clamped into the image and the
// box is then clipped, so border boxes shrink instead of reading zeros;
// the mean is taken over the surviving area. A constant image therefore has
// a constant box mean everywhere, including at the borders.
func (ii *integralImage) boxMeanAt(cy, cx, half int) float64 {
	cy = clamp(cy, 0, ii.h-1)
	cx = clamp(cx, 0, ii.w-1)
	y0 := clamp(cy-half, 0, ii.h)
	y1 := clamp(cy+half+1, 0, ii.h)
	x0 := clamp(cx-half, 0, ii.w)
	x1 := clamp(cx+half+1, 0, ii.w)
	area := float64((y1 - y0) * (x1 - x0))
	return ii.boxSum(y0, x0, y1, x1) / area
}
