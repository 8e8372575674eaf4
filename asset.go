package lumen

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadImage reads and decodes an image file. PNG, JPEG, BMP, TIFF and WebP
// are supported. Failures are returned as *AssetError.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, &AssetError{Path: path, Err: errors.New("image is empty")}
	}
	return img, nil
}

// Source supplies the pixels for one of a sprite's input textures.
// Implementations are File, FromImage and Solid.
type Source interface {
	// resolve returns the source image. w and h are the albedo size, or zero
	// when the albedo itself is being resolved.
	resolve(w, h int) (image.Image, error)
	String() string
}

// File is a Source read from disk with LoadImage.
type File string

func (f File) resolve(int, int) (image.Image, error) { return LoadImage(string(f)) }

func (f File) String() string { return string(f) }

// FromImage wraps an already decoded image as a Source.
func FromImage(img image.Image) Source { return imageSource{img} }

type imageSource struct{ img image.Image }

func (s imageSource) resolve(int, int) (image.Image, error) {
	if s.img == nil {
		return nil, errors.New("nil image")
	}
	if b := s.img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.New("image is empty")
	}
	return s.img, nil
}

func (s imageSource) String() string { return "<image>" }

// Solid is a Source filled with one color. It takes the size of the albedo,
// so it cannot be used as the albedo source itself.
type Solid Color

func (s Solid) resolve(w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("solid source needs an albedo size")
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(Color(s).toRGBA()), image.Point{}, draw.Src)
	return img, nil
}

func (s Solid) String() string {
	return fmt.Sprintf("solid(%g, %g, %g, %g)", s.R, s.G, s.B, s.A)
}

// resolveSource resolves src and wraps failures as *AssetError.
func resolveSource(src Source, w, h int) (image.Image, error) {
	if src == nil {
		return nil, &AssetError{Path: "<nil>", Err: errors.New("missing source")}
	}
	img, err := src.resolve(w, h)
	if err != nil {
		var ae *AssetError
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, &AssetError{Path: src.String(), Err: err}
	}
	return img, nil
}
