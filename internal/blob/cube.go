package blob

import "sync"

// responseCube is the 3-D response volume: one grid layer per scale, all of
// the input's dimensions. Layer i was computed at sigmas[i]. The cube is
// built once per detection call and discarded after the extrema scan.
type responseCube struct {
	sigmas []float64
	layers []*Grid
}

// buildCube fills one layer per sigma using the supplied builder. Layers are
// computed on parallel workers; each writes only its own slot and reads only
// the caller-owned input, so the result is identical to a sequential fill.
func buildCube(sigmas []float64, build func(i int, sigma float64) *Grid) *responseCube {
	layers := make([]*Grid, len(sigmas))
	var wg sync.WaitGroup
	for i, s := range sigmas {
		wg.Add(1)
		go func(i int, s float64) {
			defer wg.Done()
			layers[i] = build(i, s)
		}(i, s)
	}
	wg.Wait()
	return &responseCube{sigmas: sigmas, layers: layers}
}

// smoothStack returns g smoothed at every sigma, one grid per scale,
// computed on parallel workers. Used by the DoG detector, whose layers are
// differences of consecutive stack entries.
func smoothStack(g *Grid, sigmas []float64) []*Grid {
	stack := make([]*Grid, len(sigmas))
	var wg sync.WaitGroup
	for i, s := range sigmas {
		wg.Add(1)
		go func(i int, s float64) {
			defer wg.Done()
			stack[i] = smooth(g, s)
		}(i, s)
	}
	wg.Wait()
	return stack
}
