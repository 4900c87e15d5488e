// Package blob implements multi-scale blob detection on grayscale rasters.
//
// A blob is a compact, roughly disk-shaped region that is brighter (or, for
// the determinant-of-Hessian detector, darker) than its surroundings — stars
// in an astronomical frame, nodes in a diagram, pads on a scanned board.
// The package finds blob centers together with a characteristic radius by
// searching for local maxima in a three-dimensional response volume spanning
// the two spatial axes and one scale axis.
//
// # Detectors
//
// Three detectors share the same scale-space framework and differ in the
// speed/accuracy trade-off:
//
//   - DetectLoG — Laplacian of Gaussian. The image is smoothed at each sigma
//     and the scale-normalized Laplacian (-sigma²·∇²) is stacked into the
//     response cube. Most accurate, slowest: the convolution kernel grows
//     with sigma. Detects bright-on-dark blobs only.
//
//   - DetectDoG — Difference of Gaussians. Consecutive Gaussian-smoothed
//     images on a geometric sigma ladder are subtracted and normalized,
//     approximating the Laplacian without second derivatives. Faster than
//     LoG with the same bright-on-dark limitation.
//
//   - DetectDoH — Determinant of Hessian. Second partial derivatives are
//     approximated with box filters over a single summed-area table, so the
//     per-pixel cost is independent of sigma. Fastest, and the sign of the
//     Hessian trace separates bright from dark blobs. Radii below roughly
//     three pixels are under-resolved by the box geometry and may be missed
//     or mislocalized.
//
// # Coordinate system and data model
//
// Images are Grid values: dense row-major float64 rasters with (0,0) at the
// top left, row (Y) increasing downward, column (X) increasing rightward.
// Intensities are typically normalized to [0,1] but any finite range works;
// thresholds are expressed in the same units as the response values. The
// caller owns the input Grid; detection never mutates it, and all
// intermediate buffers (smoothed stacks, the response cube, candidate lists)
// live only for the duration of one call.
//
// Returned blobs report float row/col (grid positions of the response
// maximum), a radius derived from the detected sigma (sigma·√2 for LoG and
// DoG; sigma itself for DoH, whose box geometry already encodes the physical
// radius), and the response strength. Results are sorted by response
// descending with deterministic tie-breaks, so repeated calls with identical
// inputs return identical slices.
//
// # Edge handling
//
// Gaussian convolution replicates the border pixel (clamped indexing), and
// box sums clip their footprint to the image; neither reads out of bounds.
// A constant image is therefore exactly invariant under smoothing and
// produces an all-zero response cube. Detections whose kernel or box
// footprint extends past the border are computed against replicated data and
// are less reliable than interior detections.
//
// # Overlap pruning
//
// Overlapping detections are reduced with a greedy pass: candidates are
// visited in response order and kept only if their disk overlaps every
// already-kept disk of the same polarity by at most the configured fraction
// (exact disk-disk intersection area over the smaller disk's area). The
// greedy pass is an approximate maximum independent set, not a globally
// optimal one; it is O(n²) in the candidate count, which stays in the
// hundreds for realistic thresholds.
//
// # Errors
//
// Parameter validation failures wrap ErrInvalidParameter and zero-dimension
// inputs wrap ErrEmptyImage; both are reported before any computation runs.
// All arithmetic is total over floating point: NaN or Inf samples propagate
// into the response cube and are dropped by the threshold comparison, which
// is false for NaN.
package blob
