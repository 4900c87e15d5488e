package blob

import "math"

// pruneBlobs reduces a response-sorted blob list so that no two retained
// blobs of the same polarity overlap by more than the given fraction.
//
// The pass is greedy: blobs are visited strongest-first and kept only if
// they clear the overlap test against every blob already kept. This is an
// approximate independent-set selection — a weaker blob rejected early can
// never "un-reject" a later one — chosen for speed over global optimality.
// An overlap of 1 (or more) disables pruning entirely.
func pruneBlobs(sorted []Blob, overlap float64) []Blob {
	if overlap >= 1 || len(sorted) == 0 {
		return sorted
	}
	kept := make([]Blob, 0, len(sorted))
	for _, b := range sorted {
		ok := true
		for _, k := range kept {
			if k.Polarity != b.Polarity {
				continue
			}
			if diskOverlapRatio(b.Row, b.Col, b.Radius, k.Row, k.Col, k.Radius) > overlap {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, b)
		}
	}
	return kept
}

// diskOverlapRatio returns the exact intersection area of two disks divided
// by the area of the smaller disk: 0 for disjoint disks, 1 when the smaller
// disk is contained in the larger. Treating blobs as disks of their detected
// radius is the standard overlap model; a bounding-box approximation would
// overestimate overlap for diagonal neighbors.
func diskOverlapRatio(y1, x1, r1, y2, x2, r2 float64) float64 {
	d := math.Hypot(y1-y2, x1-x2)
	rmin := math.Min(r1, r2)
	if d >= r1+r2 {
		return 0
	}
	if d <= math.Abs(r1-r2) {
		return 1
	}

	// Lens area of two intersecting circles.
	a1 := r1 * r1 * math.Acos(clampUnit((d*d+r1*r1-r2*r2)/(2*d*r1)))
	a2 := r2 * r2 * math.Acos(clampUnit((d*d+r2*r2-r1*r1)/(2*d*r2)))
	k := (-d + r1 + r2) * (d + r1 - r2) * (d - r1 + r2) * (d + r1 + r2)
	if k < 0 {
		k = 0
	}
	lens := a1 + a2 - 0.5*math.Sqrt(k)

	return lens / (math.Pi * rmin * rmin)
}

// clampUnit keeps acos arguments inside [-1, 1] against rounding drift.
func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
