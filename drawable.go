package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Drawable is anything that writes the geometry targets. The built-in
// implementation is *Sprite.
//
// The compositor calls TryLoadShaders and then Draw once per frame for every
// drawable, in the order given.
type Drawable interface {
	// Draw writes the drawable into the four geometry targets. It must not
	// change the drawable's state.
	Draw(p *Program, albedo, height, roughness, normal *ebiten.Image) error

	// TryLoadShaders makes sure the drawable's shader is in p's ShaderCache.
	// It runs every frame, so it must be a single lookup once loaded.
	TryLoadShaders(p *Program) error
}

// LightDrawable is a light that shades the geometry buffers into the
// accumulation target. Built-in implementations are *DirectionalLight and
// *PointLight.
type LightDrawable interface {
	// Draw adds this light's contribution to target. The geometry buffers
	// are read-only.
	Draw(p *Program, g GBuffer, target *ebiten.Image) error

	// TryLoadShaders makes sure the light's shader is in p's ShaderCache.
	TryLoadShaders(p *Program) error

	// Contribution evaluates the light's shading for one fragment on the CPU,
	// before headroom scaling and tone mapping.
	Contribution(s Sample) mgl32.Vec3
}
