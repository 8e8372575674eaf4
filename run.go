package lumen

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// FrameInput is what a FrameFunc hands to the compositor each tick.
type FrameInput struct {
	Lights    []LightDrawable
	Drawables []Drawable
	// Camera may be nil for an identity view.
	Camera *Camera
}

// FrameFunc is called once per tick with the elapsed time in seconds. It
// mutates lights and drawables as needed and returns the frame to render.
// Returning ebiten.Termination ends Run without error.
type FrameFunc func(p *Program, dt float32) (FrameInput, error)

// game adapts a Program and FrameFunc to ebiten.Game.
type game struct {
	p     *Program
	frame FrameFunc
	input FrameInput
	fatal error
	last  FrameResult
}

func (g *game) Update() error {
	if g.fatal != nil {
		return g.fatal
	}
	dt := float32(1.0 / float64(ebiten.TPS()))
	in, err := g.frame(g.p, dt)
	if err != nil {
		return err
	}
	if in.Camera != nil {
		in.Camera.Update(dt)
	}
	g.input = in
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.last = g.p.RenderFrame(screen, g.input)
	if g.last.Fatal {
		g.fatal = g.last.Err
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.p.cfg.Width, g.p.cfg.Height
}

// Run opens a window sized Config.Width*WindowScale by
// Config.Height*WindowScale and renders frames until frame returns an error
// or a frame fails fatally. The fatal error is returned with its diagnostic.
//
// Run takes ownership of p: it disposes p when the loop ends, so p must not
// be used after Run returns. Drive frames with Program.RenderFrame from your
// own ebiten.Game to keep control of the program's lifetime.
func Run(p *Program, frame FrameFunc) error {
	cfg := p.cfg
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.WindowScale, cfg.Height*cfg.WindowScale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer p.Dispose()
	return ebiten.RunGame(&game{p: p, frame: frame})
}
