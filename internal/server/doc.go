// Package server implements the MCP (Model Context Protocol) server that
// exposes the blob detection engine as a set of tools.
//
// The server speaks JSON-RPC 2.0 over stdin/stdout, one message per line.
// stdout carries only protocol traffic; all logging goes to stderr.
//
// # Tools
//
// Two basic image tools and four detection tools are exposed:
//
//   - image_load: decode an image and report dimensions/format/size
//   - image_dimensions: report width and height only
//   - blob_detect_log: Laplacian-of-Gaussian detection (most accurate)
//   - blob_detect_dog: Difference-of-Gaussians detection (faster)
//   - blob_detect_doh: Determinant-of-Hessian detection (fastest, detects
//     both bright and dark blobs)
//   - blob_overlay: run a detector and return the image with detection
//     circles drawn on it
//
// Detection tools accept the engine's parameters (sigma range, threshold,
// overlap) with defaults matching common usage on [0,1]-normalized images,
// plus an optional region {x1,y1,x2,y2} cropped before detection.
//
// # Request lifecycle
//
// Each tools/call request unmarshals its arguments, loads the image through
// a shared cache, converts it to a grayscale grid, runs the engine, and
// wraps the result in MCP's content format. Tool failures (bad parameters,
// unreadable files) become JSON-RPC errors with code -32000; unknown methods
// get -32601 and malformed parameters -32602. The server itself never
// crashes on a bad request.
//
// # Concurrency
//
// Requests are processed sequentially in arrival order; the image cache is
// nevertheless safe for concurrent use, and the engine parallelizes scale
// layers internally.
package server
