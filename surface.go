package lumen

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// GBuffer is the read-only view of the geometry targets handed to lights.
type GBuffer struct {
	Albedo    *ebiten.Image
	Height    *ebiten.Image
	Roughness *ebiten.Image
	Normal    *ebiten.Image
}

// images returns the buffers in shader slot order.
func (g GBuffer) images() [4]*ebiten.Image {
	return [4]*ebiten.Image{g.Albedo, g.Height, g.Roughness, g.Normal}
}

// GeometrySurface owns the four geometry render targets. They are reused
// across frames and cleared at the start of each geometry pass, so a
// drawable left out of frame N+1 leaves nothing behind from frame N.
type GeometrySurface struct {
	width, height int
	albedo        *ebiten.Image
	heightMap     *ebiten.Image
	roughness     *ebiten.Image
	normal        *ebiten.Image

	clears uint64
}

// newGeometrySurface acquires four targets of (w, h) from pool. On failure
// every target acquired so far is returned to the pool.
func newGeometrySurface(pool *renderTargetPool, w, h int) (*GeometrySurface, error) {
	var imgs [4]*ebiten.Image
	names := [4]string{"albedo", "height", "roughness", "normal"}
	for i := range imgs {
		img, err := pool.Acquire(w, h)
		if err != nil {
			for _, acquired := range imgs[:i] {
				pool.Release(acquired)
			}
			return nil, fmt.Errorf("lumen: geometry %s target: %w", names[i], err)
		}
		imgs[i] = img
	}
	return &GeometrySurface{
		width:     w,
		height:    h,
		albedo:    imgs[0],
		heightMap: imgs[1],
		roughness: imgs[2],
		normal:    imgs[3],
	}, nil
}

// Size returns the dimensions shared by all four targets.
func (s *GeometrySurface) Size() [2]int { return [2]int{s.width, s.height} }

// Clear clears all four targets.
func (s *GeometrySurface) Clear() {
	s.albedo.Clear()
	s.heightMap.Clear()
	s.roughness.Clear()
	s.normal.Clear()
	s.clears++
}

// Clears returns how many times the targets have been cleared.
func (s *GeometrySurface) Clears() uint64 { return s.clears }

// GBuffer returns the targets for the lighting pass.
func (s *GeometrySurface) GBuffer() GBuffer {
	return GBuffer{
		Albedo:    s.albedo,
		Height:    s.heightMap,
		Roughness: s.roughness,
		Normal:    s.normal,
	}
}

// release hands the targets back to pool.
func (s *GeometrySurface) release(pool *renderTargetPool) {
	for _, img := range []*ebiten.Image{s.albedo, s.heightMap, s.roughness, s.normal} {
		pool.Release(img)
	}
	s.albedo, s.heightMap, s.roughness, s.normal = nil, nil, nil, nil
}
