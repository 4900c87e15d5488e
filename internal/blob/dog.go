package blob

import "math"

// DetectDoG finds bright-on-dark blobs with the difference-of-Gaussians
// detector. The image is smoothed along a geometric sigma ladder
// (MinSigma * SigmaRatio^i); each response layer is the difference of two
// consecutive smoothed images, scale-normalized so layers are comparable:
//
//	layer_k = sigma_k * (g_k - g_{k+1}) / (sigma_{k+1} - sigma_k)
//
// which approximates the normalized Laplacian sigma*dG/dsigma without
// computing second derivatives. Cheaper than LoG, with the same
// bright-blobs-only limitation and a slight bias toward underestimating
// radii (the forward difference peaks below the true scale).
func DetectDoG(g *Grid, p DoGParams) ([]Blob, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	sigmas := geometricSigmas(p.MinSigma, p.MaxSigma, p.SigmaRatio)
	stack := smoothStack(g, sigmas)

	layers := make([]*Grid, len(sigmas)-1)
	for i := range layers {
		norm := sigmas[i] / (sigmas[i+1] - sigmas[i])
		diff := NewGrid(g.W, g.H)
		lo, hi := stack[i].Pix, stack[i+1].Pix
		for j := range diff.Pix {
			diff.Pix[j] = (lo[j] - hi[j]) * norm
		}
		layers[i] = diff
	}
	cube := &responseCube{sigmas: sigmas[:len(layers)], layers: layers}

	return finalize(cube.localMaxima(p.Threshold), math.Sqrt2, p.Overlap), nil
}

// geometricSigmas returns the smoothing ladder min*ratio^i, extended one
// step past max so that the last difference layer still covers scales near
// max. The ladder always has at least two entries (one response layer).
func geometricSigmas(min, max, ratio float64) []float64 {
	k := 1
	if max > min {
		k = int(math.Log(max/min)/math.Log(ratio)) + 1
	}
	sigmas := make([]float64, k+1)
	s := min
	for i := range sigmas {
		sigmas[i] = s
		s *= ratio
	}
	return sigmas
}
