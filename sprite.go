package lumen

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a textured quad with albedo, height and roughness inputs and a
// normal map synthesized from them when the sprite is built.
type Sprite struct {
	// Transform places the sprite; callers may change it between frames.
	Transform Transform

	albedo    *Texture
	height    *Texture
	roughness *Texture
	normal    *Texture
}

// NewSprite uploads the three sources and bakes the normal map. Height and
// roughness may be Solid sources; they take the albedo's size.
//
// Asset failures are returned as *AssetError and GPU failures as
// *GPUResourceError. No partially built sprite is returned.
func NewSprite(p *Program, albedo, height, roughness Source, t Transform) (*Sprite, error) {
	albedoImg, err := resolveSource(albedo, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("lumen: sprite albedo: %w", err)
	}
	b := albedoImg.Bounds()
	heightImg, err := resolveSource(height, b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("lumen: sprite height: %w", err)
	}
	roughnessImg, err := resolveSource(roughness, b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("lumen: sprite roughness: %w", err)
	}

	s := &Sprite{Transform: t}
	if s.albedo, err = newTexture("albedo "+albedo.String(), albedoImg, FormatRGBA8); err != nil {
		return nil, err
	}
	if s.height, err = newTexture("height "+height.String(), heightImg, FormatHeight); err != nil {
		s.Dispose()
		return nil, err
	}
	if s.roughness, err = newTexture("roughness "+roughness.String(), roughnessImg, FormatRoughness); err != nil {
		s.Dispose()
		return nil, err
	}
	if s.normal, err = p.SynthesizeNormals(s.height, s.albedo); err != nil {
		s.Dispose()
		return nil, fmt.Errorf("lumen: sprite %s: %w", albedo, err)
	}
	return s, nil
}

// NewSpriteFromFiles builds a sprite from three image files.
func NewSpriteFromFiles(p *Program, albedoPath, heightPath, roughnessPath string, t Transform) (*Sprite, error) {
	return NewSprite(p, File(albedoPath), File(heightPath), File(roughnessPath), t)
}

// Size returns the albedo size in pixels.
func (s *Sprite) Size() [2]int { return s.albedo.Size() }

// Albedo returns the albedo texture.
func (s *Sprite) Albedo() *Texture { return s.albedo }

// HeightMap returns the height texture.
func (s *Sprite) HeightMap() *Texture { return s.height }

// Roughness returns the roughness texture.
func (s *Sprite) Roughness() *Texture { return s.roughness }

// Normal returns the synthesized normal texture.
func (s *Sprite) Normal() *Texture { return s.normal }

// Shape returns the quad for p's output size, before Transform.
func (s *Sprite) Shape(p *Program) []Vertex {
	return GenerateShape(p.Dimensions(), s.Size())
}

// TryLoadShaders compiles the sprite shader on first use.
func (s *Sprite) TryLoadShaders(p *Program) error {
	if _, ok := p.Shaders().Get(SpriteShaderName); ok {
		return nil
	}
	_, err := p.Shaders().LoadOrCompile(SpriteShaderName, spriteShaderSrc)
	return err
}

// Draw writes the sprite's four textures into the matching targets through
// the same quad and transform.
func (s *Sprite) Draw(p *Program, albedo, height, roughness, normal *ebiten.Image) error {
	shader, ok := p.Shaders().Get(SpriteShaderName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrShaderNotLoaded, SpriteShaderName)
	}
	dims := p.Dimensions()
	shape := GenerateShape(dims, s.Size())
	matrix := s.Transform.Matrix()

	var buf [6]ebiten.Vertex
	verts := toEbitenVertices(buf[:0], shape, matrix, dims, s.Size())

	var op ebiten.DrawTrianglesShaderOptions
	op.Blend = p.cfg.geometryBlend().EbitenBlend()

	pairs := [4]struct {
		name string
		dst  *ebiten.Image
		src  *Texture
	}{
		{"albedo", albedo, s.albedo},
		{"height", height, s.height},
		{"roughness", roughness, s.roughness},
		{"normal", normal, s.normal},
	}
	for _, pr := range pairs {
		if b := pr.dst.Bounds(); b.Dx() != dims[0] || b.Dy() != dims[1] {
			return fmt.Errorf("lumen: %s target %dx%d: %w", pr.name, b.Dx(), b.Dy(), ErrDimensionMismatch)
		}
		op.Images[0] = pr.src.Image()
		if err := guard("sprite draw "+pr.name, func() {
			pr.dst.DrawTrianglesShader(verts, p.Indices(), shader, &op)
		}); err != nil {
			return err
		}
		p.stats.DrawCalls++
	}
	return nil
}

// Dispose releases the sprite's textures.
func (s *Sprite) Dispose() {
	s.albedo.Dispose()
	s.height.Dispose()
	s.roughness.Dispose()
	s.normal.Dispose()
}
