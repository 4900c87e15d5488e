package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"

	"blob-tools/internal/blob"
)

// ImageCache provides thread-safe caching of loaded images and their
// grayscale grids, keyed by file path. Once a path has been loaded, repeat
// detections against the same file skip both the disk read and the
// grid conversion.
//
// Cached entries remain in memory until Evict or Clear; long-running servers
// processing many distinct files should evict paths they are done with.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
	grids  map[string]*blob.Grid
}

// NewImageCache creates an empty cache ready for concurrent use.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
		grids:  make(map[string]*blob.Grid),
	}
}

// Load returns the decoded image for path, reading and decoding it on the
// first call. PNG, JPEG, and GIF are supported. The cache key is the exact
// path string, so relative and absolute spellings of the same file occupy
// separate entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadGrid returns the normalized grayscale grid for path, converting and
// caching it on the first call.
func (c *ImageCache) LoadGrid(path string) (*blob.Grid, error) {
	c.mu.RLock()
	if g, ok := c.grids[path]; ok {
		c.mu.RUnlock()
		return g, nil
	}
	c.mu.RUnlock()

	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	g := ToGrid(img)

	c.mu.Lock()
	c.grids[path] = g
	c.mu.Unlock()

	return g, nil
}

// Evict removes a path's image and grid from the cache. Unknown paths are
// ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	delete(c.grids, path)
	c.mu.Unlock()
}

// Clear drops every cached entry.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.grids = make(map[string]*blob.Grid)
	c.mu.Unlock()
}

// ImageInfo describes a loaded image file.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is derived from the file extension: "png", "jpeg", "gif", or
	// "unknown".
	Format string `json:"format"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image (through the cache) and reports its
// dimensions, extension-derived format, and file size.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains just the pixel dimensions of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the width and height of an image file.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	return &DimensionsResult{Width: bounds.Dx(), Height: bounds.Dy()}, nil
}
