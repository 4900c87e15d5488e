package blob

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Detection errors. Parameter and input validation runs before any
// computation; on failure nothing is returned.
var (
	// ErrInvalidParameter indicates an out-of-range detection parameter,
	// such as inverted sigma bounds or an overlap fraction outside [0,1].
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyImage indicates an input grid with zero width or height.
	ErrEmptyImage = errors.New("empty image")
)

// Polarity classifies a blob as brighter or darker than its surroundings.
// Only the determinant-of-Hessian detector discriminates polarity; LoG and
// DoG blobs are always bright-on-dark and carry no tag.
type Polarity string

const (
	PolarityBright Polarity = "bright"
	PolarityDark   Polarity = "dark"
)

// Blob is a single detection.
type Blob struct {
	// Row is the Y position of the response maximum, in pixels from the top.
	Row float64 `json:"row"`

	// Col is the X position of the response maximum, in pixels from the left.
	Col float64 `json:"col"`

	// Radius is the characteristic blob radius in pixels, derived from the
	// detected scale: sigma*sqrt(2) for LoG/DoG, sigma for DoH.
	Radius float64 `json:"radius"`

	// Response is the scale-normalized detector response at the maximum.
	// Blobs are returned sorted by Response descending.
	Response float64 `json:"response"`

	// Polarity is "bright" or "dark" for DoH detections when polarity
	// discrimination is enabled, empty otherwise.
	Polarity Polarity `json:"polarity,omitempty"`
}

// LoGParams configures DetectLoG.
type LoGParams struct {
	// MinSigma and MaxSigma bound the Gaussian standard deviations searched.
	// Detected radii lie in [MinSigma*sqrt(2), MaxSigma*sqrt(2)].
	MinSigma float64
	MaxSigma float64

	// NumSigma is the number of linearly spaced scales between MinSigma and
	// MaxSigma inclusive. Must be at least 1.
	NumSigma int

	// Threshold is the minimum response for a candidate. Lower values find
	// fainter blobs.
	Threshold float64

	// Overlap is the maximum allowed disk-overlap fraction between two
	// retained blobs; 1 disables pruning.
	Overlap float64
}

// DefaultLoGParams mirrors the conventional LoG defaults for images
// normalized to [0,1].
func DefaultLoGParams() LoGParams {
	return LoGParams{MinSigma: 1, MaxSigma: 30, NumSigma: 10, Threshold: 0.1, Overlap: 0.5}
}

func (p LoGParams) validate() error {
	if err := validateSigmaRange(p.MinSigma, p.MaxSigma); err != nil {
		return err
	}
	if p.NumSigma < 1 {
		return fmt.Errorf("%w: num_sigma must be >= 1, got %d", ErrInvalidParameter, p.NumSigma)
	}
	return validateThresholdOverlap(p.Threshold, p.Overlap)
}

// DoGParams configures DetectDoG.
type DoGParams struct {
	MinSigma float64
	MaxSigma float64

	// SigmaRatio is the ratio between consecutive scales on the geometric
	// sigma ladder. Must be greater than 1; smaller ratios approximate the
	// Laplacian more closely at higher cost.
	SigmaRatio float64

	Threshold float64
	Overlap   float64
}

// DefaultDoGParams mirrors the conventional DoG defaults.
func DefaultDoGParams() DoGParams {
	return DoGParams{MinSigma: 1, MaxSigma: 30, SigmaRatio: 1.6, Threshold: 0.1, Overlap: 0.5}
}

func (p DoGParams) validate() error {
	if err := validateSigmaRange(p.MinSigma, p.MaxSigma); err != nil {
		return err
	}
	if p.SigmaRatio <= 1 {
		return fmt.Errorf("%w: sigma_ratio must be > 1, got %g", ErrInvalidParameter, p.SigmaRatio)
	}
	return validateThresholdOverlap(p.Threshold, p.Overlap)
}

// DoHParams configures DetectDoH.
type DoHParams struct {
	MinSigma float64
	MaxSigma float64
	NumSigma int

	// Threshold is the minimum determinant response. Determinant values are
	// quadratic in contrast, so useful thresholds are much smaller than for
	// LoG/DoG (0.01 vs 0.1 on [0,1] images).
	Threshold float64
	Overlap   float64

	// DetectPolarity tags each blob as bright or dark using the sign of the
	// Hessian trace at the maximum. When false, blobs are untagged and all
	// compete in a single pruning group.
	DetectPolarity bool
}

// DefaultDoHParams mirrors the conventional DoH defaults.
func DefaultDoHParams() DoHParams {
	return DoHParams{MinSigma: 1, MaxSigma: 30, NumSigma: 10, Threshold: 0.01, Overlap: 0.5, DetectPolarity: true}
}

func (p DoHParams) validate() error {
	if err := validateSigmaRange(p.MinSigma, p.MaxSigma); err != nil {
		return err
	}
	if p.NumSigma < 1 {
		return fmt.Errorf("%w: num_sigma must be >= 1, got %d", ErrInvalidParameter, p.NumSigma)
	}
	return validateThresholdOverlap(p.Threshold, p.Overlap)
}

func validateSigmaRange(min, max float64) error {
	if !(min > 0) || !(max > 0) {
		return fmt.Errorf("%w: sigmas must be positive, got min=%g max=%g", ErrInvalidParameter, min, max)
	}
	if min > max {
		return fmt.Errorf("%w: min_sigma %g exceeds max_sigma %g", ErrInvalidParameter, min, max)
	}
	return nil
}

func validateThresholdOverlap(threshold, overlap float64) error {
	if !(threshold > 0) {
		return fmt.Errorf("%w: threshold must be > 0, got %g", ErrInvalidParameter, threshold)
	}
	if overlap < 0 || overlap > 1 || math.IsNaN(overlap) {
		return fmt.Errorf("%w: overlap must be in [0,1], got %g", ErrInvalidParameter, overlap)
	}
	return nil
}

// checkGrid rejects nil or zero-dimension inputs.
func checkGrid(g *Grid) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrEmptyImage)
	}
	if g.Empty() {
		return fmt.Errorf("%w: %dx%d grid", ErrEmptyImage, g.W, g.H)
	}
	return nil
}

// sortBlobs orders blobs by response descending, breaking ties toward the
// larger radius (the more confident detection) and then by position, so the
// final order never depends on candidate scan order.
func sortBlobs(blobs []Blob) {
	sort.Slice(blobs, func(i, j int) bool {
		if blobs[i].Response != blobs[j].Response {
			return blobs[i].Response > blobs[j].Response
		}
		if blobs[i].Radius != blobs[j].Radius {
			return blobs[i].Radius > blobs[j].Radius
		}
		if blobs[i].Row != blobs[j].Row {
			return blobs[i].Row < blobs[j].Row
		}
		return blobs[i].Col < blobs[j].Col
	})
}

// finalize converts raw candidates to blobs, sorts them, and applies
// overlap pruning. radiusScale maps the detected sigma to a radius.
func finalize(cands []candidate, radiusScale, overlap float64) []Blob {
	blobs := make([]Blob, len(cands))
	for i, c := range cands {
		blobs[i] = Blob{
			Row:      float64(c.y),
			Col:      float64(c.x),
			Radius:   c.sigma * radiusScale,
			Response: c.response,
			Polarity: c.polarity,
		}
	}
	sortBlobs(blobs)
	return pruneBlobs(blobs, overlap)
}
