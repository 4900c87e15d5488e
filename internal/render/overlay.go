// Package render draws detection results back onto images. It is the
// visualization collaborator of the blob engine: the detection core only
// produces blob lists, and this package turns them into annotated frames a
// human can inspect. Nothing here feeds back into detection.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"blob-tools/internal/blob"
)

// OverlayResult contains an annotated copy of the source image encoded as
// base64 PNG.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	BlobCount   int    `json:"blob_count"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Overlay draws one circle per blob onto a copy of img, using the blob's
// center and radius, and returns the result as base64 PNG. The marker color
// is a hex string such as "#00ff00"; the source image is never modified.
func Overlay(img image.Image, blobs []blob.Blob, hexColor string) (*OverlayResult, error) {
	canvas, err := draw(img, blobs, hexColor)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	return &OverlayResult{
		Width:       canvas.Bounds().Dx(),
		Height:      canvas.Bounds().Dy(),
		BlobCount:   len(blobs),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SaveOverlay draws the same annotation and writes it to path as PNG.
func SaveOverlay(path string, img image.Image, blobs []blob.Blob, hexColor string) error {
	canvas, err := draw(img, blobs, hexColor)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, canvas, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save overlay: %w", err)
	}
	return nil
}

func draw(img image.Image, blobs []blob.Blob, hexColor string) (*image.NRGBA, error) {
	marker, err := colorful.Hex(hexColor)
	if err != nil {
		return nil, fmt.Errorf("invalid marker color %q: %w", hexColor, err)
	}

	canvas := imaging.Clone(img)
	for _, b := range blobs {
		drawCircle(canvas, int(math.Round(b.Col)), int(math.Round(b.Row)), int(math.Round(b.Radius)), marker)
	}
	return canvas, nil
}

// drawCircle strokes a one-pixel circle outline with the midpoint circle
// algorithm. Arc points outside the canvas are skipped, so circles may be
// clipped at the borders.
func drawCircle(img *image.NRGBA, cx, cy, radius int, c colorful.Color) {
	if radius < 1 {
		radius = 1
	}
	set := func(x, y int) {
		if image.Pt(x, y).In(img.Bounds()) {
			img.Set(x, y, c)
		}
	}

	x, y, err := radius, 0, 0
	for x >= y {
		set(cx+x, cy+y)
		set(cx+y, cy+x)
		set(cx-y, cy+x)
		set(cx-x, cy+y)
		set(cx-x, cy-y)
		set(cx-y, cy-x)
		set(cx+y, cy-x)
		set(cx+x, cy-y)

		y++
		err += 1 + 2*y
		if 2*(err-x)+1 > 0 {
			x--
			err += 1 - 2*x
		}
	}
}
