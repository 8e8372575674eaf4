package lumen

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// DirectionalLight lights every fragment from the same direction, like the
// sun. The height channel adds a small relief term: HeightBias raises the
// lit amount of high pixels and HeightFalloff darkens low ones.
type DirectionalLight struct {
	// Direction points from the surface towards the light. It need not be
	// unit length; the shader normalizes it.
	Direction mgl32.Vec3
	Diffuse   mgl32.Vec3
	Ambient   mgl32.Vec3
	Intensity float32

	HeightBias    float32
	HeightFalloff float32

	// Enabled lights are drawn; disabled lights are skipped by the compositor.
	Enabled bool

	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
}

// NewDirectionalLight creates an enabled directional light.
func NewDirectionalLight(direction, diffuse, ambient [3]float32, intensity, heightBias, heightFalloff float32) *DirectionalLight {
	return &DirectionalLight{
		Direction:     direction,
		Diffuse:       diffuse,
		Ambient:       ambient,
		Intensity:     intensity,
		HeightBias:    heightBias,
		HeightFalloff: heightFalloff,
		Enabled:       true,
		uniforms:      make(map[string]any, 7),
	}
}

// SetDirection stores the raw direction vector.
func (l *DirectionalLight) SetDirection(x, y, z float32) {
	l.Direction = mgl32.Vec3{x, y, z}
}

// SetIntensity sets the diffuse intensity.
func (l *DirectionalLight) SetIntensity(i float32) { l.Intensity = i }

// SetDiffuse sets the diffuse color.
func (l *DirectionalLight) SetDiffuse(r, g, b float32) { l.Diffuse = mgl32.Vec3{r, g, b} }

// SetAmbient sets the ambient color.
func (l *DirectionalLight) SetAmbient(r, g, b float32) { l.Ambient = mgl32.Vec3{r, g, b} }

// IsEnabled reports whether the light is drawn.
func (l *DirectionalLight) IsEnabled() bool { return l.Enabled }

// TryLoadShaders compiles the directional light shader on first use.
func (l *DirectionalLight) TryLoadShaders(p *Program) error {
	if _, ok := p.Shaders().Get(DirectionalLightShaderName); ok {
		return nil
	}
	_, err := p.Shaders().LoadOrCompile(DirectionalLightShaderName, directionalLightShaderSrc)
	return err
}

// Draw adds the light's contribution to target.
func (l *DirectionalLight) Draw(p *Program, g GBuffer, target *ebiten.Image) error {
	shader, ok := p.Shaders().Get(DirectionalLightShaderName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrShaderNotLoaded, DirectionalLightShaderName)
	}
	if l.uniforms == nil {
		l.uniforms = make(map[string]any, 7)
	}
	l.uniforms["Direction"] = []float32{l.Direction[0], l.Direction[1], l.Direction[2]}
	l.uniforms["Diffuse"] = []float32{l.Diffuse[0], l.Diffuse[1], l.Diffuse[2]}
	l.uniforms["Ambient"] = []float32{l.Ambient[0], l.Ambient[1], l.Ambient[2]}
	l.uniforms["Intensity"] = l.Intensity
	l.uniforms["HeightBias"] = l.HeightBias
	l.uniforms["HeightFalloff"] = l.HeightFalloff
	l.uniforms["Headroom"] = float32(p.cfg.Headroom)
	return drawLightPass(p, "directional light", shader, l.uniforms, &l.shaderOp, g, target)
}

// Contribution evaluates the directional shading model at s.
func (l *DirectionalLight) Contribution(s Sample) mgl32.Vec3 {
	if s.Albedo.A <= 0 {
		return mgl32.Vec3{}
	}
	var lambert float32
	if l.Direction.Len() > 0 {
		lambert = max(s.normal().Dot(l.Direction.Normalize()), 0)
	}
	lit := clampf(lambert+l.HeightBias*s.Height, 0, 1)
	atten := 1 / (1 + l.HeightFalloff*(1-s.Height))
	light := l.Diffuse.Mul(l.Intensity * lit * atten).Add(l.Ambient)
	return mulVec(s.base(), light).Mul(float32(s.Albedo.A))
}

// drawLightPass runs a light shader over the full target with additive
// blending. The geometry buffers and target must all be the program's size.
func drawLightPass(p *Program, name string, shader *ebiten.Shader, uniforms map[string]any, op *ebiten.DrawRectShaderOptions, g GBuffer, target *ebiten.Image) error {
	dims := p.Dimensions()
	for _, img := range g.images() {
		if img == nil {
			return fmt.Errorf("lumen: %s: missing geometry buffer", name)
		}
		if b := img.Bounds(); b.Dx() != dims[0] || b.Dy() != dims[1] {
			return fmt.Errorf("lumen: %s: geometry buffer %dx%d: %w", name, b.Dx(), b.Dy(), ErrDimensionMismatch)
		}
	}
	if b := target.Bounds(); b.Dx() != dims[0] || b.Dy() != dims[1] {
		return fmt.Errorf("lumen: %s: target %dx%d: %w", name, b.Dx(), b.Dy(), ErrDimensionMismatch)
	}
	op.Images = g.images()
	op.Uniforms = uniforms
	op.Blend = BlendAdd.EbitenBlend()
	if err := guard(name, func() {
		target.DrawRectShader(dims[0], dims[1], shader, op)
	}); err != nil {
		return err
	}
	p.stats.DrawCalls++
	return nil
}
