package lumen

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// enabler is implemented by lights that can be switched off.
type enabler interface {
	IsEnabled() bool
}

// FrameResult describes one RenderFrame call.
type FrameResult struct {
	// Frame is the frame number, starting at 1.
	Frame uint64
	// Err is set when the frame was aborted.
	Err error
	// LightErrors lists lights that failed and were skipped; the frame was
	// still presented without them.
	LightErrors []error
	// Fatal reports that the run loop should stop. Err explains why.
	Fatal bool
	Stats FrameStats
}

// DrawAll renders one frame onto screen. See Program.DrawAll.
func DrawAll(screen *ebiten.Image, lights []LightDrawable, drawables []Drawable, p *Program, camera *Camera) error {
	return p.DrawAll(screen, lights, drawables, camera)
}

// DrawAll renders one frame:
//
//  1. clear the geometry targets, then TryLoadShaders and Draw every
//     drawable in order (later drawables overwrite earlier ones per
//     Config.GeometryBlend);
//  2. clear the accumulation target;
//  3. TryLoadShaders and Draw every enabled light additively;
//  4. tone map the accumulation and blit it to screen through camera.
//
// A drawable error aborts the frame before lighting. A light error skips
// that light only; see LightErrors. A light that fails
// Config.MaxFrameFailures frames in a row is disabled until
// ResetLightFailures. Lights are summed in order, which only affects
// floating-point rounding.
func (p *Program) DrawAll(screen *ebiten.Image, lights []LightDrawable, drawables []Drawable, camera *Camera) error {
	p.draws++
	p.stats = FrameStats{Drawables: len(drawables)}
	p.lightErrs = p.lightErrs[:0]

	if err := p.ensureTargets(); err != nil {
		return err
	}

	start := time.Now()
	p.surface.Clear()
	g := p.surface.GBuffer()
	for i, d := range drawables {
		if d == nil {
			return fmt.Errorf("lumen: drawable %d is nil", i)
		}
		if err := d.TryLoadShaders(p); err != nil {
			return fmt.Errorf("lumen: drawable %d: %w", i, err)
		}
		if err := d.Draw(p, g.Albedo, g.Height, g.Roughness, g.Normal); err != nil {
			return fmt.Errorf("lumen: drawable %d: %w", i, err)
		}
	}
	p.stats.GeometryTime = time.Since(start)

	start = time.Now()
	p.accum.Clear()
	for i, l := range lights {
		if l == nil {
			continue
		}
		if e, ok := l.(enabler); ok && !e.IsEnabled() {
			continue
		}
		h := p.health(l)
		if h != nil && h.disabled {
			p.lightErrs = append(p.lightErrs, fmt.Errorf("lumen: light %d: %w", i, ErrLightDisabled))
			continue
		}
		if err := l.TryLoadShaders(p); err != nil {
			p.lightFailed(i, h, err)
			continue
		}
		if err := l.Draw(p, g, p.accum); err != nil {
			p.lightFailed(i, h, err)
			continue
		}
		if h != nil {
			h.failures = 0
		}
		p.stats.Lights++
	}
	p.pruneLightHealth()
	p.stats.LightingTime = time.Since(start)

	start = time.Now()
	if err := p.composite(screen, camera); err != nil {
		return err
	}
	p.stats.CompositeTime = time.Since(start)
	return nil
}

// lightHealth tracks consecutive failures of one light across frames.
type lightHealth struct {
	failures int
	disabled bool
	seen     uint64
}

// health returns the record for l, creating it on first sight. Lights whose
// dynamic type is not comparable cannot be tracked and get nil.
func (p *Program) health(l LightDrawable) *lightHealth {
	if !reflect.TypeOf(l).Comparable() {
		return nil
	}
	if p.lightHealth == nil {
		p.lightHealth = make(map[LightDrawable]*lightHealth)
	}
	h, ok := p.lightHealth[l]
	if !ok {
		h = &lightHealth{}
		p.lightHealth[l] = h
	}
	h.seen = p.draws
	return h
}

// pruneLightHealth drops records for lights not passed to this frame.
func (p *Program) pruneLightHealth() {
	for l, h := range p.lightHealth {
		if h.seen != p.draws {
			delete(p.lightHealth, l)
		}
	}
}

// lightFailed records err for light i. Only the first failure of a streak
// and the failure that disables the light are logged.
func (p *Program) lightFailed(i int, h *lightHealth, err error) {
	err = fmt.Errorf("lumen: light %d: %w", i, err)
	p.lightErrs = append(p.lightErrs, err)
	if h == nil {
		log.Printf("%v (skipped)", err)
		return
	}
	h.failures++
	limit := p.cfg.maxFrameFailures()
	switch {
	case limit > 0 && h.failures >= limit:
		h.disabled = true
		log.Printf("%v (disabled after %d consecutive failures)", err, h.failures)
	case h.failures == 1:
		log.Printf("%v (skipped)", err)
	}
}

// ResetLightFailures re-enables lights disabled after repeated failures and
// forgets remembered shader compile errors, so the next frame retries them.
func (p *Program) ResetLightFailures() {
	clear(p.lightHealth)
	p.shaders.ForgetAll()
}

// LightErrors returns the light failures of the last DrawAll.
func (p *Program) LightErrors() []error { return p.lightErrs }

// composite tone maps the accumulation target and blends it over the
// background by albedo alpha onto screen. See ToneMap.Composite.
func (p *Program) composite(screen *ebiten.Image, camera *Camera) error {
	shader, err := p.shaders.LoadOrCompile(CompositeShaderName, compositeShaderSrc)
	if err != nil {
		return err
	}
	dims := p.Dimensions()
	b := screen.Bounds()
	screenDims := [2]int{b.Dx(), b.Dy()}

	mode := float32(0)
	if p.cfg.ToneMap == ToneReinhard {
		mode = 1
	}
	p.compositeUniforms["Headroom"] = float32(p.cfg.Headroom)
	p.compositeUniforms["Exposure"] = float32(p.cfg.Exposure)
	p.compositeUniforms["Mode"] = mode
	p.compositeUniforms["Background"] = p.cfg.background().premultiplied()

	op := &p.compositeOp
	op.GeoM = camera.viewGeoM(dims, screenDims)
	op.Images[0] = p.accum
	op.Images[1] = p.surface.albedo
	op.Uniforms = p.compositeUniforms
	// The shader already blends over Background.
	op.Blend = ebiten.BlendCopy
	return guard("composite", func() {
		screen.Fill(p.cfg.background().toRGBA())
		screen.DrawRectShader(dims[0], dims[1], shader, op)
		p.stats.DrawCalls++
	})
}

// RenderFrame runs DrawAll with failure accounting. A failed frame is
// logged and the next frame retries; after Config.MaxFrameFailures
// consecutive failures, or on a target allocation failure, the result is
// Fatal.
func (p *Program) RenderFrame(screen *ebiten.Image, in FrameInput) FrameResult {
	p.frame++
	res := FrameResult{Frame: p.frame}

	err := p.DrawAll(screen, in.Lights, in.Drawables, in.Camera)
	res.Stats = p.stats
	if len(p.lightErrs) > 0 {
		res.LightErrors = append([]error(nil), p.lightErrs...)
	}
	if err == nil {
		p.consecutiveFailures = 0
		p.flushScreenshots(screen)
		p.debugLog(res.Stats)
		return res
	}

	p.consecutiveFailures++
	res.Err = err
	var fatal *fatalError
	switch {
	case errors.As(err, &fatal):
		res.Fatal = true
	case p.cfg.maxFrameFailures() > 0 && p.consecutiveFailures > p.cfg.maxFrameFailures():
		res.Fatal = true
		res.Err = fmt.Errorf("%w (%d): %w", ErrTooManyFailures, p.consecutiveFailures, err)
	}
	if res.Fatal {
		log.Printf("lumen: frame %d: fatal: %v", p.frame, res.Err)
	} else {
		log.Printf("lumen: frame %d aborted: %v", p.frame, err)
	}
	return res
}
