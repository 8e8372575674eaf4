package lumen

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

var (
	testOutput = [2]int{128, 128}
	testScreen = [2]int{512, 512}
)

func TestNewCameraDefaults(t *testing.T) {
	cam := NewCamera([3]float32{0.1, 0.2, 0.3})
	if cam.X != 0.1 || cam.Y != 0.2 || cam.Z != 0.3 {
		t.Errorf("position = (%v, %v, %v)", cam.X, cam.Y, cam.Z)
	}
	if cam.Zoom != 1 {
		t.Errorf("Zoom = %v, want 1", cam.Zoom)
	}
	if cam.Scrolling() {
		t.Error("new camera should not be scrolling")
	}
}

func TestWorldToScreen(t *testing.T) {
	tests := []struct {
		name   string
		cam    *Camera
		x, y   float32
		sx, sy float64
	}{
		{"nil camera center", nil, 0, 0, 256, 256},
		{"nil camera top-left", nil, -1, 1, 0, 0},
		{"identity bottom-right", NewCamera([3]float32{}), 1, -1, 512, 512},
		{"offset camera centers target", &Camera{X: 0.5, Y: 0.5, Zoom: 1}, 0.5, 0.5, 256, 256},
		{"zoom doubles distance", &Camera{Zoom: 2}, 0.5, 0, 512, 256},
		{"zero zoom is identity", &Camera{}, 0.5, 0, 384, 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := tt.cam.WorldToScreen(testOutput, testScreen, tt.x, tt.y)
			if !approxEqual(sx, tt.sx, 1e-3) || !approxEqual(sy, tt.sy, 1e-3) {
				t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestScreenToWorldRoundTrip(t *testing.T) {
	cams := []*Camera{
		nil,
		NewCamera([3]float32{}),
		{X: 0.3, Y: -0.2, Zoom: 1.5, Rotation: math.Pi / 6},
		{X: -0.7, Y: 0.1, Zoom: 0.5, Rotation: -1},
	}
	for i, cam := range cams {
		for _, pt := range [][2]float32{{0, 0}, {0.5, -0.25}, {-0.9, 0.8}} {
			sx, sy := cam.WorldToScreen(testOutput, testScreen, pt[0], pt[1])
			x, y := cam.ScreenToWorld(testOutput, testScreen, sx, sy)
			if !approxEqual(float64(x), float64(pt[0]), 1e-4) || !approxEqual(float64(y), float64(pt[1]), 1e-4) {
				t.Errorf("camera %d: round trip %v -> (%v, %v)", i, pt, x, y)
			}
		}
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := NewCamera([3]float32{})
	cam.ScrollTo(1, -1, 1, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("Scrolling() = false after ScrollTo")
	}

	cam.Update(0.5)
	if !approxEqual(float64(cam.X), 0.5, 1e-4) || !approxEqual(float64(cam.Y), -0.5, 1e-4) {
		t.Errorf("halfway = (%v, %v), want (0.5, -0.5)", cam.X, cam.Y)
	}

	cam.Update(0.6)
	if cam.X != 1 || cam.Y != -1 {
		t.Errorf("end = (%v, %v), want (1, -1)", cam.X, cam.Y)
	}
	if cam.Scrolling() {
		t.Error("Scrolling() = true after the tween finished")
	}
}

func TestCameraSetPositionCancelsScroll(t *testing.T) {
	cam := NewCamera([3]float32{})
	cam.ScrollTo(1, 1, 2, ease.OutCubic)
	cam.SetPosition(0.2, 0.3, 0)
	if cam.Scrolling() {
		t.Error("SetPosition did not cancel the scroll")
	}
	cam.Update(1)
	if cam.X != 0.2 || cam.Y != 0.3 {
		t.Errorf("position = (%v, %v), want (0.2, 0.3)", cam.X, cam.Y)
	}
}
