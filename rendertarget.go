package lumen

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// renderTargetPool manages reusable offscreen ebiten.Images keyed by exact
// dimensions. Every pass samples targets pixel-for-pixel against the
// program's output size, so sizes are never rounded up.
type renderTargetPool struct {
	buckets map[uint64][]*ebiten.Image
	live    int
}

// poolKey packs width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared unmanaged image of exactly (w, h) pixels.
func (p *renderTargetPool) Acquire(w, h int) (*ebiten.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, &GPUResourceError{
			Resource: "render target",
			Err:      fmt.Errorf("invalid size %dx%d", w, h),
		}
	}
	key := poolKey(w, h)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			p.live++
			return img, nil
		}
	}

	var img *ebiten.Image
	err := guard(fmt.Sprintf("render target %dx%d", w, h), func() {
		img = ebiten.NewImageWithOptions(
			image.Rect(0, 0, w, h),
			&ebiten.NewImageOptions{Unmanaged: true},
		)
	})
	if err != nil {
		return nil, err
	}
	p.live++
	return img, nil
}

// Release returns an image to the pool for reuse. The image is cleared on
// next Acquire, not here.
func (p *renderTargetPool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
	p.live--
}

// Idle returns the number of released images waiting for reuse.
func (p *renderTargetPool) Idle() int {
	n := 0
	for _, stack := range p.buckets {
		n += len(stack)
	}
	return n
}

// Dispose deallocates every idle image.
func (p *renderTargetPool) Dispose() {
	for _, stack := range p.buckets {
		for _, img := range stack {
			img.Deallocate()
		}
	}
	p.buckets = nil
}
