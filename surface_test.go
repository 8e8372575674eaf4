package lumen

import "testing"

func TestGeometrySurfaceTargets(t *testing.T) {
	var pool renderTargetPool
	s, err := newGeometrySurface(&pool, 16, 8)
	if err != nil {
		t.Fatalf("newGeometrySurface: %v", err)
	}
	if s.Size() != [2]int{16, 8} {
		t.Errorf("Size() = %v, want [16 8]", s.Size())
	}

	g := s.GBuffer()
	imgs := g.images()
	want := [4]string{"albedo", "height", "roughness", "normal"}
	for i, img := range imgs {
		if img == nil {
			t.Fatalf("%s target is nil", want[i])
		}
		if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
			t.Errorf("%s target = %dx%d, want 16x8", want[i], b.Dx(), b.Dy())
		}
	}
	if imgs[0] != g.Albedo || imgs[1] != g.Height || imgs[2] != g.Roughness || imgs[3] != g.Normal {
		t.Error("images() is not in albedo, height, roughness, normal order")
	}
	for i := range imgs {
		for j := i + 1; j < len(imgs); j++ {
			if imgs[i] == imgs[j] {
				t.Errorf("%s and %s share a target", want[i], want[j])
			}
		}
	}

	s.Clear() // should not panic
	s.Clear()
	if s.Clears() != 2 {
		t.Errorf("Clears() = %d, want 2", s.Clears())
	}

	s.release(&pool)
	if pool.Idle() != 4 {
		t.Errorf("pool Idle() = %d, want 4 after release", pool.Idle())
	}
}

func TestGeometrySurfaceInvalidSize(t *testing.T) {
	var pool renderTargetPool
	if _, err := newGeometrySurface(&pool, 0, 8); err == nil {
		t.Fatal("expected error for zero width")
	}
	if pool.Idle() != 0 {
		t.Errorf("pool Idle() = %d, want 0", pool.Idle())
	}
}
