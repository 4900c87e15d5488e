package blob

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestDetectDoHFlatImage(t *testing.T) {
	g := NewGrid(64, 64)
	for i := range g.Pix {
		g.Pix[i] = 0.5
	}
	blobs, err := DetectDoH(g, DoHParams{MinSigma: 2, MaxSigma: 10, NumSigma: 5, Threshold: 0.0001, Overlap: 0.5, DetectPolarity: true})
	if err != nil {
		t.Fatalf("DetectDoH: %v", err)
	}
	if len(blobs) != 0 {
		t.Errorf("flat image produced %d blobs: %+v", len(blobs), blobs)
	}
}

func TestDetectDoHPolarityDiscrimination(t *testing.T) {
	// One bright and one dark spot of equal size on a mid-gray background:
	// polarity discrimination must tag them oppositely.
	g := NewGrid(96, 96)
	for i := range g.Pix {
		g.Pix[i] = 0.5
	}
	addSpot(g, 24, 24, 5, 0.4)
	addSpot(g, 72, 72, 5, -0.4)

	blobs, err := DetectDoH(g, DoHParams{MinSigma: 2, MaxSigma: 8, NumSigma: 4, Threshold: 0.003, Overlap: 0.5, DetectPolarity: true})
	if err != nil {
		t.Fatalf("DetectDoH: %v", err)
	}

	var bright, dark []Blob
	for _, b := range blobs {
		switch b.Polarity {
		case PolarityBright:
			bright = append(bright, b)
		case PolarityDark:
			dark = append(dark, b)
		default:
			t.Errorf("blob with polarity discrimination enabled is untagged: %+v", b)
		}
	}
	if len(bright) != 1 || len(dark) != 1 {
		t.Fatalf("got %d bright and %d dark blobs, want 1 each: %+v", len(bright), len(dark), blobs)
	}
	if math.Abs(bright[0].Row-24) > 2 || math.Abs(bright[0].Col-24) > 2 {
		t.Errorf("bright blob at (%v,%v), want (24,24) +/- 2px", bright[0].Row, bright[0].Col)
	}
	if math.Abs(dark[0].Row-72) > 2 || math.Abs(dark[0].Col-72) > 2 {
		t.Errorf("dark blob at (%v,%v), want (72,72) +/- 2px", dark[0].Row, dark[0].Col)
	}
	// DoH sigma encodes the radius directly; both must sit in the scale range.
	for _, b := range blobs {
		if b.Radius < 2 || b.Radius > 8 {
			t.Errorf("radius %v outside configured scale range [2,8]", b.Radius)
		}
	}
}

func TestDetectDoHPolarityDisabled(t *testing.T) {
	g := NewGrid(96, 96)
	for i := range g.Pix {
		g.Pix[i] = 0.5
	}
	addSpot(g, 24, 24, 5, 0.4)
	addSpot(g, 72, 72, 5, -0.4)

	blobs, err := DetectDoH(g, DoHParams{MinSigma: 2, MaxSigma: 8, NumSigma: 4, Threshold: 0.003, Overlap: 0.5})
	if err != nil {
		t.Fatalf("DetectDoH: %v", err)
	}
	if len(blobs) != 2 {
		t.Fatalf("got %d blobs, want 2: %+v", len(blobs), blobs)
	}
	for _, b := range blobs {
		if b.Polarity != "" {
			t.Errorf("polarity tag %q present with discrimination disabled", b.Polarity)
		}
	}
}

func TestDetectDoHDeterministic(t *testing.T) {
	g := NewGrid(64, 64)
	for i := range g.Pix {
		g.Pix[i] = 0.5
	}
	addSpot(g, 20, 20, 4, 0.5)
	addSpot(g, 44, 40, 6, -0.3)

	p := DoHParams{MinSigma: 2, MaxSigma: 10, NumSigma: 6, Threshold: 0.001, Overlap: 0.5, DetectPolarity: true}
	first, err := DetectDoH(g, p)
	if err != nil {
		t.Fatalf("DetectDoH: %v", err)
	}
	again, err := DetectDoH(g, p)
	if err != nil {
		t.Fatalf("DetectDoH (repeat): %v", err)
	}
	if !reflect.DeepEqual(first, again) {
		t.Errorf("results differ between runs:\n%+v\n%+v", first, again)
	}
}

func TestDetectDoHValidation(t *testing.T) {
	g := NewGrid(16, 16)
	cases := []DoHParams{
		{MinSigma: 5, MaxSigma: 1, NumSigma: 3, Threshold: 0.01, Overlap: 0.5}, // inverted bounds
		{MinSigma: 1, MaxSigma: 5, NumSigma: 3, Threshold: 0.01, Overlap: 1.5}, // overlap out of range
		{MinSigma: 0, MaxSigma: 5, NumSigma: 3, Threshold: 0.01, Overlap: 0.5}, // zero sigma
		{MinSigma: 1, MaxSigma: 5, NumSigma: 3, Threshold: 0, Overlap: 0.5},    // zero threshold
	}
	for i, p := range cases {
		if _, err := DetectDoH(g, p); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("case %d: err = %v, want ErrInvalidParameter", i, err)
		}
	}
	if _, err := DetectDoH(NewGrid(0, 7), DefaultDoHParams()); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("empty grid: err = %v, want ErrEmptyImage", err)
	}
}

func TestHessianSigns(t *testing.T) {
	// Bright bump: both pure second partials negative, negative trace.
	g := NewGrid(48, 48)
	for i := range g.Pix {
		g.Pix[i] = 0.5
	}
	addSpot(g, 24, 24, 5, 0.4)
	ii := newIntegral(g)

	lxx, lyy, lxy := hessianAt(ii, 24, 24, 5)
	if lxx >= 0 || lyy >= 0 {
		t.Errorf("bright bump: lxx=%v lyy=%v, want both negative", lxx, lyy)
	}
	if math.Abs(lxy) > 1e-9 {
		t.Errorf("axis-symmetric bump: lxy=%v, want ~0", lxy)
	}
	if det := lxx*lyy - lxy*lxy; det <= 0 {
		t.Errorf("det = %v at blob center, want > 0", det)
	}
}
