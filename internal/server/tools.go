package server

// Tool describes an MCP tool for the tools/list response.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Path to the image file (PNG, JPEG, or GIF)",
	}
}

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional region of interest; detection runs on the crop and reported coordinates are crop-relative",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer", "description": "Left edge (inclusive)"},
			"y1": map[string]interface{}{"type": "integer", "description": "Top edge (inclusive)"},
			"x2": map[string]interface{}{"type": "integer", "description": "Right edge (exclusive)"},
			"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge (exclusive)"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// sharedDetectProperties returns the schema properties common to every
// detection tool. Each caller adds its scale-ladder parameter on top.
func sharedDetectProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"min_sigma": map[string]interface{}{
			"type":        "number",
			"description": "Smallest Gaussian sigma searched (default 1)",
		},
		"max_sigma": map[string]interface{}{
			"type":        "number",
			"description": "Largest Gaussian sigma searched (default 30)",
		},
		"threshold": map[string]interface{}{
			"type":        "number",
			"description": "Minimum response for a scale-space maximum to count as a blob",
		},
		"overlap": map[string]interface{}{
			"type":        "number",
			"description": "Overlap fraction in [0,1] above which the weaker of two blobs is pruned (default 0.5)",
		},
		"region": regionProperty(),
	}
}

func toolDefinitions() []Tool {
	logProps := sharedDetectProperties()
	logProps["num_sigma"] = map[string]interface{}{
		"type":        "integer",
		"description": "Number of linearly spaced scales between min_sigma and max_sigma (default 10)",
	}

	dogProps := sharedDetectProperties()
	dogProps["sigma_ratio"] = map[string]interface{}{
		"type":        "number",
		"description": "Ratio between consecutive scales on the geometric sigma ladder, must be > 1 (default 1.6)",
	}

	dohProps := sharedDetectProperties()
	dohProps["num_sigma"] = map[string]interface{}{
		"type":        "integer",
		"description": "Number of linearly spaced scales between min_sigma and max_sigma (default 10)",
	}
	dohProps["detect_polarity"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Tag each blob as bright or dark using the Hessian trace (default true)",
	}

	overlayProps := sharedDetectProperties()
	overlayProps["algorithm"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"log", "dog", "doh"},
		"description": "Detector to run before drawing (default log)",
	}
	overlayProps["num_sigma"] = logProps["num_sigma"]
	overlayProps["sigma_ratio"] = dogProps["sigma_ratio"]
	overlayProps["color"] = map[string]interface{}{
		"type":        "string",
		"description": "Marker color as a hex string; defaults per algorithm (log #00ff00, dog #ffff00, doh #ff0000)",
	}
	overlayProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "If set, also write the overlay PNG to this path",
	}

	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, and file size",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"path": pathProperty()},
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"path": pathProperty()},
				"required":   []string{"path"},
			},
		},
		{
			Name: "blob_detect_log",
			Description: "Detect bright blobs with the Laplacian of Gaussian method. " +
				"Most accurate of the three detectors; cost grows with num_sigma and image size.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": logProps,
				"required":   []string{"path"},
			},
		},
		{
			Name: "blob_detect_dog",
			Description: "Detect bright blobs with the Difference of Gaussians method, " +
				"a faster approximation of the Laplacian.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": dogProps,
				"required":   []string{"path"},
			},
		},
		{
			Name: "blob_detect_doh",
			Description: "Detect blobs with the Determinant of Hessian method. Fastest for " +
				"large scales, finds both bright and dark blobs, less accurate for small blobs. " +
				"Note: determinant responses are quadratic in contrast, so use a much lower " +
				"threshold (default 0.01).",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": dohProps,
				"required":   []string{"path"},
			},
		},
		{
			Name: "blob_overlay",
			Description: "Run a blob detector and return the image with a circle drawn around " +
				"each detection, as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": overlayProps,
				"required":   []string{"path"},
			},
		},
	}
}
