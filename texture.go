package lumen

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Format describes what a texture's channels hold.
type Format uint8

const (
	FormatRGBA8     Format = iota // color: albedo, normals, light output
	FormatHeight                  // height field in the red channel
	FormatRoughness               // roughness in the red channel
)

func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "rgba8"
	case FormatHeight:
		return "height"
	case FormatRoughness:
		return "roughness"
	}
	return "unknown"
}

// Texture is a GPU image with a known format. It is owned by the sprite or
// pass that created it.
type Texture struct {
	img    *ebiten.Image
	format Format
}

// newTexture uploads src. name identifies the texture in errors.
func newTexture(name string, src image.Image, f Format) (*Texture, error) {
	if src == nil {
		return nil, &GPUResourceError{Resource: "texture " + name, Err: errors.New("nil image")}
	}
	if b := src.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, &GPUResourceError{Resource: "texture " + name, Err: errors.New("empty image")}
	}
	var img *ebiten.Image
	if err := guard("texture "+name, func() {
		img = ebiten.NewImageFromImage(src)
	}); err != nil {
		return nil, err
	}
	return &Texture{img: img, format: f}, nil
}

// newEmptyTexture allocates a cleared texture of the given size.
func newEmptyTexture(name string, w, h int, f Format) (*Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, &GPUResourceError{Resource: "texture " + name, Err: errors.New("empty size")}
	}
	var img *ebiten.Image
	if err := guard("texture "+name, func() {
		img = ebiten.NewImage(w, h)
	}); err != nil {
		return nil, err
	}
	return &Texture{img: img, format: f}, nil
}

// Image returns the underlying Ebitengine image.
func (t *Texture) Image() *ebiten.Image { return t.img }

// Format returns the texture format.
func (t *Texture) Format() Format { return t.format }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.img.Bounds().Dx() }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.img.Bounds().Dy() }

// Size returns the texture dimensions as [width, height].
func (t *Texture) Size() [2]int { return [2]int{t.Width(), t.Height()} }

// Dispose releases the GPU image. Safe to call twice.
func (t *Texture) Dispose() {
	if t == nil || t.img == nil {
		return
	}
	t.img.Deallocate()
	t.img = nil
}
