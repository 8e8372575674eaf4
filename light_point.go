package lumen

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// PointLight radiates from a position in normalized device units. Z is the
// light's elevation above the sprite plane, in the same units as height.
type PointLight struct {
	Position  mgl32.Vec3
	Diffuse   mgl32.Vec3
	Ambient   mgl32.Vec3
	Intensity float32
	// Attenuation is 1 / (1 + Linear*d + Quadratic*d*d).
	Linear    float32
	Quadratic float32

	Enabled bool

	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
}

// NewPointLight creates an enabled point light.
func NewPointLight(position, diffuse, ambient [3]float32, intensity, linear, quadratic float32) *PointLight {
	return &PointLight{
		Position:  position,
		Diffuse:   diffuse,
		Ambient:   ambient,
		Intensity: intensity,
		Linear:    linear,
		Quadratic: quadratic,
		Enabled:   true,
		uniforms:  make(map[string]any, 7),
	}
}

// SetPosition moves the light.
func (l *PointLight) SetPosition(x, y, z float32) {
	l.Position = mgl32.Vec3{x, y, z}
}

// SetIntensity sets the diffuse intensity.
func (l *PointLight) SetIntensity(i float32) { l.Intensity = i }

// IsEnabled reports whether the light is drawn.
func (l *PointLight) IsEnabled() bool { return l.Enabled }

// TryLoadShaders compiles the point light shader on first use.
func (l *PointLight) TryLoadShaders(p *Program) error {
	if _, ok := p.Shaders().Get(PointLightShaderName); ok {
		return nil
	}
	_, err := p.Shaders().LoadOrCompile(PointLightShaderName, pointLightShaderSrc)
	return err
}

// Draw adds the light's contribution to target.
func (l *PointLight) Draw(p *Program, g GBuffer, target *ebiten.Image) error {
	shader, ok := p.Shaders().Get(PointLightShaderName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrShaderNotLoaded, PointLightShaderName)
	}
	if l.uniforms == nil {
		l.uniforms = make(map[string]any, 7)
	}
	l.uniforms["Position"] = []float32{l.Position[0], l.Position[1], l.Position[2]}
	l.uniforms["Diffuse"] = []float32{l.Diffuse[0], l.Diffuse[1], l.Diffuse[2]}
	l.uniforms["Ambient"] = []float32{l.Ambient[0], l.Ambient[1], l.Ambient[2]}
	l.uniforms["Intensity"] = l.Intensity
	l.uniforms["Linear"] = l.Linear
	l.uniforms["Quadratic"] = l.Quadratic
	l.uniforms["Headroom"] = float32(p.cfg.Headroom)
	return drawLightPass(p, "point light", shader, l.uniforms, &l.shaderOp, g, target)
}

// Contribution evaluates the point light shading model at s.
func (l *PointLight) Contribution(s Sample) mgl32.Vec3 {
	if s.Albedo.A <= 0 {
		return mgl32.Vec3{}
	}
	toLight := l.Position.Sub(mgl32.Vec3{s.X, s.Y, s.Height})
	d := toLight.Len()
	lambert := float32(1)
	if d > 0 {
		lambert = max(s.normal().Dot(toLight.Mul(1/d)), 0)
	}
	atten := 1 / (1 + l.Linear*d + l.Quadratic*d*d)
	light := l.Diffuse.Mul(l.Intensity * lambert * atten).Add(l.Ambient)
	return mulVec(s.base(), light).Mul(float32(s.Albedo.A))
}
