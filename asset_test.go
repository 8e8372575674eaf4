package lumen

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestPNG(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// --- LoadImage ---

func TestLoadImagePNG(t *testing.T) {
	path := writeTestPNG(t, 6, 3, color.NRGBA{255, 0, 0, 255})
	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Errorf("size = %dx%d, want 6x3", b.Dx(), b.Dy())
	}
}

func TestLoadImageMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.png")
	_, err := LoadImage(path)
	var assetErr *AssetError
	if !errors.As(err, &assetErr) {
		t.Fatalf("err = %v, want *AssetError", err)
	}
	if assetErr.Path != path {
		t.Errorf("Path = %q, want %q", assetErr.Path, path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err does not wrap os.ErrNotExist: %v", err)
	}
}

func TestLoadImageCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadImage(path)
	var assetErr *AssetError
	if !errors.As(err, &assetErr) {
		t.Fatalf("err = %v, want *AssetError", err)
	}
}

// --- Sources ---

func TestSolidSource(t *testing.T) {
	img, err := resolveSource(Solid(ColorWhite), 4, 2)
	if err != nil {
		t.Fatalf("resolveSource: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("size = %dx%d, want 4x2", b.Dx(), b.Dy())
	}
	r, g, b, a := img.At(3, 1).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Errorf("pixel = (%d, %d, %d, %d), want opaque white", r, g, b, a)
	}
}

func TestSolidSourceNeedsSize(t *testing.T) {
	_, err := resolveSource(Solid(ColorBlack), 0, 0)
	var assetErr *AssetError
	if !errors.As(err, &assetErr) {
		t.Fatalf("err = %v, want *AssetError", err)
	}
	if !strings.HasPrefix(assetErr.Path, "solid(") {
		t.Errorf("Path = %q, want solid(...)", assetErr.Path)
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img, err := resolveSource(FromImage(src), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if img != image.Image(src) {
		t.Error("FromImage did not return the wrapped image")
	}

	for _, bad := range []image.Image{nil, image.NewRGBA(image.Rect(0, 0, 0, 5))} {
		if _, err := resolveSource(FromImage(bad), 0, 0); err == nil {
			t.Errorf("FromImage(%v) resolved without error", bad)
		}
	}
}

func TestFileSourceKeepsAssetError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.png")
	_, err := resolveSource(File(path), 0, 0)
	var assetErr *AssetError
	if !errors.As(err, &assetErr) {
		t.Fatalf("err = %v, want *AssetError", err)
	}
	if assetErr.Path != path {
		t.Errorf("Path = %q, want %q (no double wrapping)", assetErr.Path, path)
	}
}

func TestResolveNilSource(t *testing.T) {
	if _, err := resolveSource(nil, 1, 1); err == nil {
		t.Error("expected error for nil source")
	}
}
