package blob

import "math"

// DetectDoH finds blobs of both polarities with the determinant-of-Hessian
// detector. A single summed-area table is built once; at each scale the
// Hessian second partials are approximated by central differences of box
// means, so the per-pixel cost is a fixed number of table lookups regardless
// of sigma. The response is the scale-normalized determinant
// Lxx*Lyy - Lxy², which peaks at blob centers of either polarity; when
// DetectPolarity is set, the sign of the trace Lxx+Lyy at each maximum tags
// the blob (negative trace means an intensity peak, i.e. a bright blob).
//
// The detected sigma already encodes the physical radius under the box
// geometry used here, so Radius equals sigma directly. Blobs with radii
// below about three pixels are under-resolved by the boxes and may be
// missed or mislocalized; that is an accuracy limit of the method, not a
// defect of a particular image.
func DetectDoH(g *Grid, p DoHParams) ([]Blob, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	ii := newIntegral(g)
	cube := buildCube(linearSigmas(p.MinSigma, p.MaxSigma, p.NumSigma), func(_ int, sigma float64) *Grid {
		return dohLayer(ii, g.W, g.H, sigma)
	})

	cands := cube.localMaxima(p.Threshold)
	if p.DetectPolarity {
		for i := range cands {
			c := &cands[i]
			lxx, lyy, _ := hessianAt(ii, c.y, c.x, c.sigma)
			if lxx+lyy < 0 {
				c.polarity = PolarityBright
			} else {
				c.polarity = PolarityDark
			}
		}
	}

	return finalize(cands, 1, p.Overlap), nil
}

// dohLayer fills one determinant-of-Hessian response layer at the given
// sigma.
func dohLayer(ii *integralImage, w, h int, sigma float64) *Grid {
	layer := NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lxx, lyy, lxy := hessianAt(ii, y, x, sigma)
			layer.Pix[y*w+x] = lxx*lyy - lxy*lxy
		}
	}
	return layer
}

// hessianAt approximates the scale-normalized Hessian entries at (y, x) for
// scale sigma using box filters: each second partial is a central second
// difference of square box means with lobe l = round(sigma), step h = 2l and
// box side 2l+1, normalized by sigma²/h². Each entry costs a constant number
// of summed-area lookups. Boxes near the border are clipped (their means
// shrink to the surviving area), so detections within 3l of the border are
// computed against partial support.
func hessianAt(ii *integralImage, y, x int, sigma float64) (lxx, lyy, lxy float64) {
	l := int(math.Round(sigma))
	if l < 1 {
		l = 1
	}
	h := 2 * l
	norm := sigma * sigma / float64(h*h)

	center := ii.boxMeanAt(y, x, l)
	lxx = (ii.boxMeanAt(y, x-h, l) + ii.boxMeanAt(y, x+h, l) - 2*center) * norm
	lyy = (ii.boxMeanAt(y-h, x, l) + ii.boxMeanAt(y+h, x, l) - 2*center) * norm
	lxy = (ii.boxMeanAt(y-h, x-h, l) + ii.boxMeanAt(y+h, x+h, l) -
		ii.boxMeanAt(y-h, x+h, l) - ii.boxMeanAt(y+h, x-h, l)) * norm / 4
	return lxx, lyy, lxy
}
