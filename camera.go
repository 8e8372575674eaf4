package lumen

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera offsets the final lit image when it is blitted to the screen. It
// does not affect the geometry or lighting passes. X and Y are in
// normalized device units (the output spans [-1, 1], +Y up).
type Camera struct {
	X, Y, Z float32
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float32
	// Rotation is the camera rotation in radians (counter-clockwise).
	Rotation float32

	scrollTween *scrollAnim
}

// NewCamera creates a camera centered on position with no zoom.
func NewCamera(position [3]float32) *Camera {
	return &Camera{X: position[0], Y: position[1], Z: position[2], Zoom: 1}
}

// SetPosition moves the camera and cancels any scroll animation.
func (c *Camera) SetPosition(x, y, z float32) {
	c.X, c.Y, c.Z = x, y, z
	c.scrollTween = nil
}

// ScrollTo animates the camera to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y float32, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(c.X, x, duration, easeFn),
		tweenY: gween.New(c.Y, y, duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Camera) Scrolling() bool { return c.scrollTween != nil }

// Update advances the scroll animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.scrollTween == nil {
		return
	}
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		c.X = val
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		c.Y = val
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
}

// viewGeoM returns the blit transform from an output of outputDims pixels
// onto a screen of screenDims pixels.
//
//	Translate(-center) -> Translate(-camera) -> Scale(zoom) -> Rotate(-rotation)
//	  -> Translate(center) -> Scale(screen/output)
func (c *Camera) viewGeoM(outputDims, screenDims [2]int) ebiten.GeoM {
	var g ebiten.GeoM
	w, h := float64(outputDims[0]), float64(outputDims[1])
	g.Translate(-w/2, -h/2)
	if c != nil {
		g.Translate(-float64(c.X)*w/2, float64(c.Y)*h/2)
		zoom := float64(c.Zoom)
		if zoom == 0 {
			zoom = 1
		}
		g.Scale(zoom, zoom)
		if c.Rotation != 0 {
			g.Rotate(-float64(c.Rotation))
		}
	}
	g.Translate(w/2, h/2)
	g.Scale(float64(screenDims[0])/w, float64(screenDims[1])/h)
	return g
}

// WorldToScreen converts a point in normalized device units to screen pixels.
func (c *Camera) WorldToScreen(outputDims, screenDims [2]int, x, y float32) (sx, sy float64) {
	g := c.viewGeoM(outputDims, screenDims)
	px := (float64(x) + 1) / 2 * float64(outputDims[0])
	py := (1 - float64(y)) / 2 * float64(outputDims[1])
	return g.Apply(px, py)
}

// ScreenToWorld converts screen pixels to normalized device units.
func (c *Camera) ScreenToWorld(outputDims, screenDims [2]int, sx, sy float64) (x, y float32) {
	g := c.viewGeoM(outputDims, screenDims)
	g.Invert()
	px, py := g.Apply(sx, sy)
	return float32(px/float64(outputDims[0])*2 - 1), float32(1 - py/float64(outputDims[1])*2)
}
