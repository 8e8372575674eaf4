package lumen

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Program is the top-level rendering context. It owns the output
// resolution, the shader cache, and the geometry and accumulation targets
// every pass shares. A Program is used from the render thread only.
type Program struct {
	cfg     Config
	shaders *ShaderCache
	pool    renderTargetPool

	surface *GeometrySurface
	accum   *ebiten.Image

	frame               uint64
	draws               uint64
	consecutiveFailures int
	lightErrs           []error
	lightHealth         map[LightDrawable]*lightHealth
	stats               FrameStats

	compositeUniforms map[string]any
	compositeOp       ebiten.DrawRectShaderOptions

	screenshotQueue []string
}

// NewProgram validates cfg (zero fields take DefaultConfig values) and
// creates a program. Render targets are allocated on the first frame.
func NewProgram(cfg Config) (*Program, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Program{
		cfg:               cfg,
		shaders:           NewShaderCache(),
		compositeUniforms: make(map[string]any, 4),
	}, nil
}

// Config returns a copy of the effective configuration.
func (p *Program) Config() Config { return p.cfg.withDefaults() }

// Dimensions returns the output resolution [width, height].
func (p *Program) Dimensions() [2]int { return [2]int{p.cfg.Width, p.cfg.Height} }

// Indices returns the fixed index list for one quad: every vertex in order.
func (p *Program) Indices() []uint16 { return quadIndices }

// Shaders returns the program's shader cache.
func (p *Program) Shaders() *ShaderCache { return p.shaders }

// Frame returns the number of frames rendered so far.
func (p *Program) Frame() uint64 { return p.frame }

// Surface returns the geometry targets, or nil before the first frame.
func (p *Program) Surface() *GeometrySurface { return p.surface }

// SynthesizeNormals bakes a normal map for albedo from height using the
// program's normal strength.
func (p *Program) SynthesizeNormals(height, albedo *Texture) (*Texture, error) {
	return synthesizeNormals(p.shaders, &p.pool, height, albedo, float32(p.cfg.NormalStrength))
}

// ensureTargets allocates the geometry surface and accumulation target on
// first use. Allocation failure is fatal to the program.
func (p *Program) ensureTargets() error {
	if p.surface != nil && p.accum != nil {
		return nil
	}
	w, h := p.cfg.Width, p.cfg.Height
	surface, err := newGeometrySurface(&p.pool, w, h)
	if err != nil {
		return &fatalError{err}
	}
	accum, err := p.pool.Acquire(w, h)
	if err != nil {
		surface.release(&p.pool)
		return &fatalError{fmt.Errorf("lumen: accumulation target: %w", err)}
	}
	p.surface = surface
	p.accum = accum
	return nil
}

// Dispose releases all render targets and compiled shaders.
func (p *Program) Dispose() {
	if p.surface != nil {
		p.surface.release(&p.pool)
		p.surface = nil
	}
	if p.accum != nil {
		p.pool.Release(p.accum)
		p.accum = nil
	}
	p.pool.Dispose()
	p.shaders.Dispose()
}

// fatalError marks a frame failure the run loop must not retry.
type fatalError struct{ err error }

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }
