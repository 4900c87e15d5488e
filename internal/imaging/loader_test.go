package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a solid-color PNG and returns its path.
func writeTestPNG(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestImageCacheLoad(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, 30, 20, color.White)

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 20 {
		t.Errorf("loaded %v, want 30x20", img.Bounds())
	}

	// Second load hits the cache and returns the same decoded image.
	again, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load (cached): %v", err)
	}
	if again != img {
		t.Error("cached load returned a different image value")
	}
}

func TestImageCacheLoadGrid(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, 12, 8, color.Gray{255})

	g, err := cache.LoadGrid(path)
	if err != nil {
		t.Fatalf("LoadGrid: %v", err)
	}
	if g.W != 12 || g.H != 8 {
		t.Fatalf("grid is %dx%d, want 12x8", g.W, g.H)
	}
	if g.At(4, 4) != 1 {
		t.Errorf("white image grid sample = %v, want 1", g.At(4, 4))
	}

	again, err := cache.LoadGrid(path)
	if err != nil {
		t.Fatalf("LoadGrid (cached): %v", err)
	}
	if again != g {
		t.Error("cached grid load returned a different grid value")
	}
}

func TestImageCacheEvict(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, 4, 4, color.Black)

	if _, err := cache.LoadGrid(path); err != nil {
		t.Fatalf("LoadGrid: %v", err)
	}
	cache.Evict(path)
	os.Remove(path)

	// With the file gone and the cache evicted, loading must fail.
	if _, err := cache.Load(path); err == nil {
		t.Error("Load after evict+remove should fail")
	}

	// Evicting an unknown path is a no-op.
	cache.Evict("/no/such/file.png")
}

func TestImageCacheLoadErrors(t *testing.T) {
	cache := NewImageCache()

	if _, err := cache.Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("loading a missing file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(bad); err == nil {
		t.Error("loading a non-image file should fail")
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, 25, 15, color.White)

	info, err := LoadImageInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadImageInfo: %v", err)
	}
	if info.Width != 25 || info.Height != 15 {
		t.Errorf("dimensions %dx%d, want 25x15", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format = %q, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("file size = %d, want > 0", info.FileSizeBytes)
	}
}

func TestGetDimensions(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, 9, 7, color.White)

	dims, err := GetDimensions(cache, path)
	if err != nil {
		t.Fatalf("GetDimensions: %v", err)
	}
	if dims.Width != 9 || dims.Height != 7 {
		t.Errorf("dimensions %dx%d, want 9x7", dims.Width, dims.Height)
	}
}
