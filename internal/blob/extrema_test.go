package blob

import (
	"math"
	"testing"
)

// cubeFromValues builds a response cube from explicit layer values for
// small extrema-scan tests. values[s][y][x].
func cubeFromValues(values [][][]float64) *responseCube {
	layers := make([]*Grid, len(values))
	sigmas := make([]float64, len(values))
	for s, lv := range values {
		g := NewGrid(len(lv[0]), len(lv))
		for y, row := range lv {
			for x, v := range row {
				g.Set(y, x, v)
			}
		}
		layers[s] = g
		sigmas[s] = float64(s + 1)
	}
	return &responseCube{sigmas: sigmas, layers: layers}
}

func TestLocalMaximaSinglePeak(t *testing.T) {
	c := cubeFromValues([][][]float64{
		{
			{0, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 0, 0, 0},
			{0, 5, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 0, 0, 0},
			{0, 2, 0, 0},
			{0, 0, 0, 0},
		},
	})

	cands := c.localMaxima(0.5)
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(cands), cands)
	}
	got := cands[0]
	if got.y != 1 || got.x != 1 || got.sigma != 2 || got.response != 5 {
		t.Errorf("candidate = %+v, want peak at (1,1) sigma 2 response 5", got)
	}
}

func TestLocalMaximaThreshold(t *testing.T) {
	c := cubeFromValues([][][]float64{
		{
			{0, 0, 0},
			{0, 0.4, 0},
			{0, 0, 0},
		},
	})
	if got := c.localMaxima(0.4); len(got) != 0 {
		t.Errorf("response equal to threshold must not qualify, got %+v", got)
	}
	if got := c.localMaxima(0.39); len(got) != 1 {
		t.Errorf("response above threshold must qualify, got %+v", got)
	}
}

func TestLocalMaximaPlateauTie(t *testing.T) {
	// Two equal adjacent maxima: neither is strictly exceeded, so both are
	// reported regardless of scan order.
	c := cubeFromValues([][][]float64{
		{
			{0, 0, 0, 0},
			{0, 3, 3, 0},
			{0, 0, 0, 0},
		},
	})
	cands := c.localMaxima(1)
	if len(cands) != 2 {
		t.Fatalf("got %d candidates on plateau, want 2: %+v", len(cands), cands)
	}
}

func TestLocalMaximaBorderPeak(t *testing.T) {
	// A maximum in the corner and at a scale end: out-of-cube neighbors are
	// skipped, so it still qualifies.
	c := cubeFromValues([][][]float64{
		{
			{4, 0, 0},
			{0, 0, 0},
		},
		{
			{1, 0, 0},
			{0, 0, 0},
		},
	})
	cands := c.localMaxima(0.5)
	if len(cands) != 1 || cands[0].y != 0 || cands[0].x != 0 {
		t.Fatalf("corner peak not detected: %+v", cands)
	}
}

func TestLocalMaximaIgnoresNaN(t *testing.T) {
	nan := math.NaN()
	c := cubeFromValues([][][]float64{
		{
			{0, 0, 0},
			{0, nan, 0},
			{0, 0, 2},
		},
	})
	cands := c.localMaxima(0.5)
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1 (NaN must not qualify): %+v", len(cands), cands)
	}
	if cands[0].y != 2 || cands[0].x != 2 {
		t.Errorf("wrong candidate kept: %+v", cands[0])
	}
}
