package lumen

import "github.com/go-gl/mathgl/mgl32"

// Transform places a drawable in the output plane. Positions are in
// normalized device units: the output spans [-1, 1] on both axes with +Y up.
//
// Composition order:
//
//	Scale -> Rotate(Z) -> Translate(Position)
type Transform struct {
	// Position is the translation; Z is carried through but does not move
	// the quad in the plane.
	Position [3]float32
	// Rotation is the rotation about Z in radians (counter-clockwise).
	Rotation float32
	// Scale multiplies the quad extents per axis.
	Scale [2]float32
}

// NewTransform returns an unrotated, unscaled transform at position.
func NewTransform(position [3]float32) Transform {
	return Transform{Position: position, Scale: [2]float32{1, 1}}
}

// SetPosition moves the transform.
func (t *Transform) SetPosition(x, y, z float32) {
	t.Position = [3]float32{x, y, z}
}

// Translate offsets the position.
func (t *Transform) Translate(dx, dy, dz float32) {
	t.Position[0] += dx
	t.Position[1] += dy
	t.Position[2] += dz
}

// Matrix returns the 4x4 column-major matrix T * R * S.
func (t Transform) Matrix() mgl32.Mat4 {
	sx, sy := t.Scale[0], t.Scale[1]
	if sx == 0 && sy == 0 {
		// Zero value Transform behaves like NewTransform.
		sx, sy = 1, 1
	}
	m := mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	if t.Rotation != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(t.Rotation))
	}
	return m.Mul4(mgl32.Scale3D(sx, sy, 1))
}

// Apply transforms a point in the plane.
func (t Transform) Apply(x, y float32) (float32, float32) {
	v := t.Matrix().Mul4x1(mgl32.Vec4{x, y, 0, 1})
	return v.X(), v.Y()
}
