package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Vertex is a quad corner in normalized device units with texture
// coordinates in [0, 1] (v = 1 is the top row of the image).
type Vertex struct {
	Position  [2]float32
	TexCoords [2]float32
}

// quadIndices draws the six shape vertices in order.
var quadIndices = []uint16{0, 1, 2, 3, 4, 5}

// ScalingFactor returns the per-axis quad extent for a sprite of spriteDims
// pixels drawn into an output of outputDims pixels.
func ScalingFactor(outputDims, spriteDims [2]int) [2]float32 {
	return [2]float32{
		float32(spriteDims[0]) / float32(outputDims[0]),
		float32(spriteDims[1]) / float32(outputDims[1]),
	}
}

// GenerateShape returns two triangles centered on the origin spanning
// ±ScalingFactor(outputDims, spriteDims), so a sprite keeps its source pixel
// size relative to the output resolution.
func GenerateShape(outputDims, spriteDims [2]int) []Vertex {
	s := ScalingFactor(outputDims, spriteDims)
	return []Vertex{
		{Position: [2]float32{-s[0], -s[1]}, TexCoords: [2]float32{0, 0}},
		{Position: [2]float32{s[0], -s[1]}, TexCoords: [2]float32{1, 0}},
		{Position: [2]float32{s[0], s[1]}, TexCoords: [2]float32{1, 1}},
		{Position: [2]float32{s[0], s[1]}, TexCoords: [2]float32{1, 1}},
		{Position: [2]float32{-s[0], s[1]}, TexCoords: [2]float32{0, 1}},
		{Position: [2]float32{-s[0], -s[1]}, TexCoords: [2]float32{0, 0}},
	}
}

// toEbitenVertices maps shape vertices through matrix into destination pixels
// of an outputDims target, sampling a texDims source. dst must have room for
// len(shape) vertices.
func toEbitenVertices(dst []ebiten.Vertex, shape []Vertex, matrix mgl32.Mat4, outputDims, texDims [2]int) []ebiten.Vertex {
	dst = dst[:0]
	ow, oh := float32(outputDims[0]), float32(outputDims[1])
	tw, th := float32(texDims[0]), float32(texDims[1])
	for _, v := range shape {
		p := matrix.Mul4x1(mgl32.Vec4{v.Position[0], v.Position[1], 0, 1})
		dst = append(dst, ebiten.Vertex{
			DstX:   (p.X() + 1) / 2 * ow,
			DstY:   (1 - p.Y()) / 2 * oh,
			SrcX:   v.TexCoords[0] * tw,
			SrcY:   (1 - v.TexCoords[1]) * th,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}
	return dst
}
