package blob

import (
	"math"
	"testing"
)

// naiveBoxSum computes the clipped box sum directly from grid samples.
func naiveBoxSum(g *Grid, y0, x0, y1, x1 int) float64 {
	var sum float64
	for y := clamp(y0, 0, g.H); y < clamp(y1, 0, g.H); y++ {
		for x := clamp(x0, 0, g.W); x < clamp(x1, 0, g.W); x++ {
			sum += g.Pix[y*g.W+x]
		}
	}
	return sum
}

func patternGrid(w, h int) *Grid {
	g := NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(y, x, float64((y*31+x*17)%23)+0.25)
		}
	}
	return g
}

func TestIntegralBoxSum(t *testing.T) {
	g := patternGrid(13, 9)
	ii := newIntegral(g)

	boxes := [][4]int{
		{0, 0, 9, 13},   // whole image
		{0, 0, 1, 1},    // single pixel
		{2, 3, 7, 11},   // interior
		{-4, -4, 3, 3},  // clipped top-left
		{5, 8, 20, 20},  // clipped bottom-right
		{4, 4, 4, 9},    // empty (y0 == y1)
		{-5, -5, -1, 2}, // fully outside
	}
	for _, b := range boxes {
		got := ii.boxSum(b[0], b[1], b[2], b[3])
		want := naiveBoxSum(g, b[0], b[1], b[2], b[3])
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("boxSum(%v) = %v, want %v", b, got, want)
		}
	}
}

func TestIntegralBoxMeanConstant(t *testing.T) {
	g := NewGrid(20, 16)
	for i := range g.Pix {
		g.Pix[i] = 0.5
	}
	ii := newIntegral(g)

	// Clipped border boxes must still average to the constant value.
	for _, p := range [][2]int{{0, 0}, {15, 19}, {8, 10}, {0, 19}, {-3, 2}, {40, 40}} {
		for _, half := range []int{1, 3, 7} {
			if got := ii.boxMeanAt(p[0], p[1], half); math.Abs(got-0.5) > 1e-12 {
				t.Errorf("boxMeanAt(%d,%d,%d) = %v, want 0.5", p[0], p[1], half, got)
			}
		}
	}
}

func TestGridAtClamped(t *testing.T) {
	g := patternGrid(5, 4)
	if got, want := g.atClamped(-3, -3), g.At(0, 0); got != want {
		t.Errorf("atClamped(-3,-3) = %v, want %v", got, want)
	}
	if got, want := g.atClamped(10, 10), g.At(3, 4); got != want {
		t.Errorf("atClamped(10,10) = %v, want %v", got, want)
	}
	if got, want := g.atClamped(2, 3), g.At(2, 3); got != want {
		t.Errorf("atClamped(2,3) = %v, want %v", got, want)
	}
}

func TestGridEmpty(t *testing.T) {
	var nilGrid *Grid
	if !nilGrid.Empty() {
		t.Error("nil grid should be empty")
	}
	if !NewGrid(0, 5).Empty() {
		t.Error("zero-width grid should be empty")
	}
	if NewGrid(3, 3).Empty() {
		t.Error("3x3 grid should not be empty")
	}
}
