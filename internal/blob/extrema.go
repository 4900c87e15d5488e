package blob

// candidate is a raw response-cube maximum before radius conversion and
// overlap pruning.
type candidate struct {
	y, x     int
	sigma    float64
	response float64
	polarity Polarity
}

// localMaxima returns every cube position whose response strictly exceeds
// threshold and is not strictly exceeded by any of its (up to) 26 neighbors
// in the 3x3x3 (scale, row, col) window. Neighbors outside the cube are
// skipped, which is equivalent to clamped comparison at the spatial borders
// and at both ends of the scale axis.
//
// The tie-break is deliberate: a center that equals its largest neighbor
// still qualifies, so plateaus report every plateau cell and the result is
// independent of scan order. NaN responses never qualify because the
// threshold comparison is false for NaN.
func (c *responseCube) localMaxima(threshold float64) []candidate {
	var cands []candidate
	if len(c.layers) == 0 {
		return cands
	}
	h, w := c.layers[0].H, c.layers[0].W

	for s, layer := range c.layers {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := layer.Pix[y*w+x]
				if !(v > threshold) {
					continue
				}
				if c.exceededByNeighbor(v, s, y, x) {
					continue
				}
				cands = append(cands, candidate{y: y, x: x, sigma: c.sigmas[s], response: v})
			}
		}
	}
	return cands
}

// exceededByNeighbor reports whether any in-cube 3x3x3 neighbor of
// (s, y, x) strictly exceeds v.
func (c *responseCube) exceededByNeighbor(v float64, s, y, x int) bool {
	h, w := c.layers[0].H, c.layers[0].W
	for ds := -1; ds <= 1; ds++ {
		ns := s + ds
		if ns < 0 || ns >= len(c.layers) {
			continue
		}
		layer := c.layers[ns]
		for dy := -1; dy <= 1; dy++ {
			ny := y + dy
			if ny < 0 || ny >= h {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				nx := x + dx
				if nx < 0 || nx >= w {
					continue
				}
				if ds == 0 && dy == 0 && dx == 0 {
					continue
				}
				if layer.Pix[ny*w+nx] > v {
					return true
				}
			}
		}
	}
	return false
}
