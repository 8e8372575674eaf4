package lumen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// --- ScalingFactor ---

func TestScalingFactor(t *testing.T) {
	tests := []struct {
		output, sprite [2]int
		want           [2]float32
	}{
		{[2]int{128, 128}, [2]int{32, 32}, [2]float32{0.25, 0.25}},
		{[2]int{128, 128}, [2]int{128, 128}, [2]float32{1, 1}},
		{[2]int{256, 128}, [2]int{32, 32}, [2]float32{0.125, 0.25}},
		{[2]int{64, 64}, [2]int{128, 32}, [2]float32{2, 0.5}},
	}
	for _, tt := range tests {
		got := ScalingFactor(tt.output, tt.sprite)
		if !approxEqual(float64(got[0]), float64(tt.want[0]), epsilon) ||
			!approxEqual(float64(got[1]), float64(tt.want[1]), epsilon) {
			t.Errorf("ScalingFactor(%v, %v) = %v, want %v", tt.output, tt.sprite, got, tt.want)
		}
	}
}

// --- GenerateShape ---

func TestGenerateShapeExtents(t *testing.T) {
	shape := GenerateShape([2]int{128, 128}, [2]int{32, 32})
	if len(shape) != 6 {
		t.Fatalf("len = %d, want 6", len(shape))
	}
	for i, v := range shape {
		for axis := 0; axis < 2; axis++ {
			got := v.Position[axis]
			if !approxEqual(float64(got), 0.25, epsilon) && !approxEqual(float64(got), -0.25, epsilon) {
				t.Errorf("vertex %d axis %d = %v, want ±0.25", i, axis, got)
			}
		}
	}
}

func TestGenerateShapeSymmetric(t *testing.T) {
	shape := GenerateShape([2]int{160, 90}, [2]int{24, 40})
	var sumX, sumY float32
	for _, v := range shape {
		sumX += v.Position[0]
		sumY += v.Position[1]
	}
	if !approxEqual(float64(sumX), 0, epsilon) || !approxEqual(float64(sumY), 0, epsilon) {
		t.Errorf("shape not centered: sum = (%v, %v)", sumX, sumY)
	}
}

func TestGenerateShapeTexCoordsFollowPosition(t *testing.T) {
	shape := GenerateShape([2]int{128, 128}, [2]int{32, 16})
	for i, v := range shape {
		wantU := float32(0)
		if v.Position[0] > 0 {
			wantU = 1
		}
		wantV := float32(0)
		if v.Position[1] > 0 {
			wantV = 1
		}
		if v.TexCoords != [2]float32{wantU, wantV} {
			t.Errorf("vertex %d texcoords = %v, want %v", i, v.TexCoords, [2]float32{wantU, wantV})
		}
	}
}

// --- toEbitenVertices ---

func TestToEbitenVerticesIdentity(t *testing.T) {
	shape := GenerateShape([2]int{128, 128}, [2]int{32, 32})
	var buf [6]ebiten.Vertex
	verts := toEbitenVertices(buf[:0], shape, mgl32.Ident4(), [2]int{128, 128}, [2]int{32, 32})
	if len(verts) != 6 {
		t.Fatalf("len = %d, want 6", len(verts))
	}

	// Vertex 0 is the bottom-left corner: NDC (-0.25, -0.25), uv (0, 0).
	v := verts[0]
	if !approxEqual(float64(v.DstX), 48, epsilon) || !approxEqual(float64(v.DstY), 80, epsilon) {
		t.Errorf("dst = (%v, %v), want (48, 80)", v.DstX, v.DstY)
	}
	if !approxEqual(float64(v.SrcX), 0, epsilon) || !approxEqual(float64(v.SrcY), 32, epsilon) {
		t.Errorf("src = (%v, %v), want (0, 32)", v.SrcX, v.SrcY)
	}

	// Vertex 2 is the top-right corner.
	v = verts[2]
	if !approxEqual(float64(v.DstX), 80, epsilon) || !approxEqual(float64(v.DstY), 48, epsilon) {
		t.Errorf("dst = (%v, %v), want (80, 48)", v.DstX, v.DstY)
	}
	if !approxEqual(float64(v.SrcX), 32, epsilon) || !approxEqual(float64(v.SrcY), 0, epsilon) {
		t.Errorf("src = (%v, %v), want (32, 0)", v.SrcX, v.SrcY)
	}
	if v.ColorA != 1 {
		t.Errorf("ColorA = %v, want 1", v.ColorA)
	}
}

func TestToEbitenVerticesTranslated(t *testing.T) {
	shape := GenerateShape([2]int{100, 100}, [2]int{10, 10})
	tr := NewTransform([3]float32{0.5, -0.5, 0})
	var buf [6]ebiten.Vertex
	verts := toEbitenVertices(buf[:0], shape, tr.Matrix(), [2]int{100, 100}, [2]int{10, 10})

	// Center moves from (50, 50) to (75, 75) in pixels.
	var cx, cy float32
	for _, v := range verts {
		cx += v.DstX
		cy += v.DstY
	}
	cx /= 6
	cy /= 6
	if !approxEqual(float64(cx), 75, 1e-3) || !approxEqual(float64(cy), 75, 1e-3) {
		t.Errorf("center = (%v, %v), want (75, 75)", cx, cy)
	}
}
