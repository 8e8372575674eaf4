package lumen

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sample is the content of the four geometry buffers at one fragment, in
// the form the lighting shaders see it after un-premultiplying.
type Sample struct {
	// Albedo is the straight-alpha surface color.
	Albedo    Color
	Height    float32
	Roughness float32
	// Normal is the decoded unit normal; the zero vector means "no normal"
	// and is treated as facing the viewer.
	Normal mgl32.Vec3
	// X and Y are the fragment position in normalized device units.
	X, Y float32
}

// FlatNormal faces the viewer.
var FlatNormal = mgl32.Vec3{0, 0, 1}

// EncodeNormal packs a unit normal into the [0, 1] range stored in normal maps.
func EncodeNormal(n mgl32.Vec3) [3]float32 {
	return [3]float32{n[0]*0.5 + 0.5, n[1]*0.5 + 0.5, n[2]*0.5 + 0.5}
}

// DecodeNormal unpacks an encoded normal and renormalizes it.
func DecodeNormal(enc [3]float32) mgl32.Vec3 {
	n := mgl32.Vec3{enc[0]*2 - 1, enc[1]*2 - 1, enc[2]*2 - 1}
	if n.Len() == 0 {
		return FlatNormal
	}
	return n.Normalize()
}

// HeightNormal is the normal the synthesis pass derives from the heights of
// a pixel's four neighbors (up is towards +Y).
func HeightNormal(left, right, up, down, strength float32) mgl32.Vec3 {
	dx := right - left
	dy := up - down
	return mgl32.Vec3{-dx * strength, -dy * strength, 1}.Normalize()
}

func (s Sample) normal() mgl32.Vec3 {
	if s.Normal.Len() == 0 {
		return FlatNormal
	}
	return s.Normal.Normalize()
}

func (s Sample) base() mgl32.Vec3 {
	return mgl32.Vec3{float32(s.Albedo.R), float32(s.Albedo.G), float32(s.Albedo.B)}
}

// Accumulate sums the contributions of lights at s, in order.
func Accumulate(lights []LightDrawable, s Sample) mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, l := range lights {
		sum = sum.Add(l.Contribution(s))
	}
	return sum
}

// Apply maps an accumulated color to display range the way the composite
// pass does.
func (t ToneMap) Apply(c mgl32.Vec3, exposure float32) mgl32.Vec3 {
	c = c.Mul(exposure)
	if t == ToneReinhard {
		for i := range c {
			c[i] = c[i] / (1 + c[i])
		}
	}
	for i := range c {
		c[i] = float32(math.Max(0, math.Min(1, float64(c[i]))))
	}
	return c
}

// Composite returns the premultiplied screen color the composite pass
// writes for a pixel with accumulated light acc, premultiplied by the
// albedo alpha, over background. Pixels with zero alpha show background;
// partly covered pixels blend the tone-mapped light over it.
func (t ToneMap) Composite(acc mgl32.Vec3, alpha, exposure float32, background Color) mgl32.Vec4 {
	bg := background.premultiplied()
	bgv := mgl32.Vec4{bg[0], bg[1], bg[2], bg[3]}
	alpha = clampf(alpha, 0, 1)
	if alpha == 0 {
		return bgv
	}
	rgb := t.Apply(acc.Mul(1/alpha), exposure).Mul(alpha)
	return rgb.Vec4(alpha).Add(bgv.Mul(1 - alpha))
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// mulVec multiplies two vectors component-wise.
func mulVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
