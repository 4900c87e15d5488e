package server

import (
	"encoding/json"
	"fmt"

	"blob-tools/internal/blob"
	"blob-tools/internal/imaging"
	"blob-tools/internal/render"
)

// ToolCallParams carries the params object of a tools/call request.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// toolResult wraps a value in MCP's content format.
type toolResult struct {
	Content []contentItem `json:"content"`
}

type contentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func textResult(v interface{}) (*toolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &toolResult{Content: []contentItem{{Type: "text", Text: string(data)}}}, nil
}

func (s *Server) executeTool(params *ToolCallParams) (*toolResult, error) {
	switch params.Name {
	case "image_load":
		return s.handleImageLoad(params.Arguments)
	case "image_dimensions":
		return s.handleImageDimensions(params.Arguments)
	case "blob_detect_log":
		return s.handleDetectLoG(params.Arguments)
	case "blob_detect_dog":
		return s.handleDetectDoG(params.Arguments)
	case "blob_detect_doh":
		return s.handleDetectDoH(params.Arguments)
	case "blob_overlay":
		return s.handleOverlay(params.Arguments)
	default:
		return nil, fmt.Errorf("unknown tool: %s", params.Name)
	}
}

func (s *Server) handleImageLoad(args json.RawMessage) (*toolResult, error) {
	var a struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	return textResult(info)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (*toolResult, error) {
	var a struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	dims, err := imaging.GetDimensions(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	return textResult(dims)
}

// regionArg bounds a crop in image pixel coordinates, x2/y2 exclusive.
type regionArg struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// detectArgs holds the union of the detection tools' arguments. Pointer
// fields distinguish "absent" from a deliberate zero; absent fields take
// the engine defaults.
type detectArgs struct {
	Path           string     `json:"path"`
	MinSigma       float64    `json:"min_sigma"`
	MaxSigma       float64    `json:"max_sigma"`
	NumSigma       int        `json:"num_sigma"`
	SigmaRatio     float64    `json:"sigma_ratio"`
	Threshold      *float64   `json:"threshold"`
	Overlap        *float64   `json:"overlap"`
	DetectPolarity *bool      `json:"detect_polarity"`
	Region         *regionArg `json:"region"`
}

func parseDetectArgs(raw json.RawMessage) (*detectArgs, error) {
	var a detectArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return &a, nil
}

func (a *detectArgs) logParams() blob.LoGParams {
	p := blob.DefaultLoGParams()
	if a.MinSigma != 0 {
		p.MinSigma = a.MinSigma
	}
	if a.MaxSigma != 0 {
		p.MaxSigma = a.MaxSigma
	}
	if a.NumSigma != 0 {
		p.NumSigma = a.NumSigma
	}
	if a.Threshold != nil {
		p.Threshold = *a.Threshold
	}
	if a.Overlap != nil {
		p.Overlap = *a.Overlap
	}
	return p
}

func (a *detectArgs) dogParams() blob.DoGParams {
	p := blob.DefaultDoGParams()
	if a.MinSigma != 0 {
		p.MinSigma = a.MinSigma
	}
	if a.MaxSigma != 0 {
		p.MaxSigma = a.MaxSigma
	}
	if a.SigmaRatio != 0 {
		p.SigmaRatio = a.SigmaRatio
	}
	if a.Threshold != nil {
		p.Threshold = *a.Threshold
	}
	if a.Overlap != nil {
		p.Overlap = *a.Overlap
	}
	return p
}

func (a *detectArgs) dohParams() blob.DoHParams {
	p := blob.DefaultDoHParams()
	if a.MinSigma != 0 {
		p.MinSigma = a.MinSigma
	}
	if a.MaxSigma != 0 {
		p.MaxSigma = a.MaxSigma
	}
	if a.NumSigma != 0 {
		p.NumSigma = a.NumSigma
	}
	if a.Threshold != nil {
		p.Threshold = *a.Threshold
	}
	if a.Overlap != nil {
		p.Overlap = *a.Overlap
	}
	if a.DetectPolarity != nil {
		p.DetectPolarity = *a.DetectPolarity
	}
	return p
}

// loadGrid resolves the arguments to a grayscale grid: the cached full-image
// grid, or a fresh crop when a region is given.
func (s *Server) loadGrid(a *detectArgs) (*blob.Grid, error) {
	if a.Region == nil {
		return s.cache.LoadGrid(a.Path)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	r := a.Region
	cropped, err := imaging.CropRegion(img, r.X1, r.Y1, r.X2, r.Y2, 0)
	if err != nil {
		return nil, err
	}
	return imaging.ToGrid(cropped), nil
}

// detectResult is the JSON payload shared by the three detection tools.
// MinSigma/MaxSigma echo the scale range actually searched (after defaults),
// and Intensity reports the grid's dynamic range so callers can judge
// whether their threshold was sane.
type detectResult struct {
	Algorithm string            `json:"algorithm"`
	Count     int               `json:"count"`
	Blobs     []blob.Blob       `json:"blobs"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	MinSigma  float64           `json:"min_sigma"`
	MaxSigma  float64           `json:"max_sigma"`
	Intensity imaging.GridStats `json:"intensity"`
}

func newDetectResult(algorithm string, g *blob.Grid, blobs []blob.Blob, minSigma, maxSigma float64) *detectResult {
	return &detectResult{
		Algorithm: algorithm,
		Count:     len(blobs),
		Blobs:     blobs,
		Width:     g.W,
		Height:    g.H,
		MinSigma:  minSigma,
		MaxSigma:  maxSigma,
		Intensity: imaging.Stats(g),
	}
}

func (s *Server) handleDetectLoG(args json.RawMessage) (*toolResult, error) {
	a, err := parseDetectArgs(args)
	if err != nil {
		return nil, err
	}
	g, err := s.loadGrid(a)
	if err != nil {
		return nil, err
	}
	p := a.logParams()
	blobs, err := blob.DetectLoG(g, p)
	if err != nil {
		return nil, err
	}
	return textResult(newDetectResult("log", g, blobs, p.MinSigma, p.MaxSigma))
}

func (s *Server) handleDetectDoG(args json.RawMessage) (*toolResult, error) {
	a, err := parseDetectArgs(args)
	if err != nil {
		return nil, err
	}
	g, err := s.loadGrid(a)
	if err != nil {
		return nil, err
	}
	p := a.dogParams()
	blobs, err := blob.DetectDoG(g, p)
	if err != nil {
		return nil, err
	}
	return textResult(newDetectResult("dog", g, blobs, p.MinSigma, p.MaxSigma))
}

func (s *Server) handleDetectDoH(args json.RawMessage) (*toolResult, error) {
	a, err := parseDetectArgs(args)
	if err != nil {
		return nil, err
	}
	g, err := s.loadGrid(a)
	if err != nil {
		return nil, err
	}
	p := a.dohParams()
	blobs, err := blob.DetectDoH(g, p)
	if err != nil {
		return nil, err
	}
	return textResult(newDetectResult("doh", g, blobs, p.MinSigma, p.MaxSigma))
}

// Default marker colors per detector.
var overlayColors = map[string]string{
	"log": "#00ff00",
	"dog": "#ffff00",
	"doh": "#ff0000",
}

type overlayArgs struct {
	detectArgs
	Algorithm  string `json:"algorithm"`
	Color      string `json:"color"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleOverlay(args json.RawMessage) (*toolResult, error) {
	var a overlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if a.Algorithm == "" {
		a.Algorithm = "log"
	}

	g, err := s.loadGrid(&a.detectArgs)
	if err != nil {
		return nil, err
	}

	var blobs []blob.Blob
	switch a.Algorithm {
	case "log":
		blobs, err = blob.DetectLoG(g, a.logParams())
	case "dog":
		blobs, err = blob.DetectDoG(g, a.dogParams())
	case "doh":
		blobs, err = blob.DetectDoH(g, a.dohParams())
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (want log, dog, or doh)", a.Algorithm)
	}
	if err != nil {
		return nil, err
	}

	color := a.Color
	if color == "" {
		color = overlayColors[a.Algorithm]
	}

	// Draw on the crop when a region was given, so circles line up with the
	// crop-relative blob coordinates.
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if r := a.Region; r != nil {
		img, err = imaging.CropRegion(img, r.X1, r.Y1, r.X2, r.Y2, 0)
		if err != nil {
			return nil, err
		}
	}

	result, err := render.Overlay(img, blobs, color)
	if err != nil {
		return nil, err
	}
	if a.OutputPath != "" {
		if err := render.SaveOverlay(a.OutputPath, img, blobs, color); err != nil {
			return nil, err
		}
	}
	return textResult(result)
}
