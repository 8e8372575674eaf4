package lumen

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// countingCompiler stands in for ebiten.NewShader and counts compilations.
type countingCompiler struct {
	calls    int
	err      error
	panicVal any
}

func (c *countingCompiler) compile([]byte) (*ebiten.Shader, error) {
	c.calls++
	if c.panicVal != nil {
		panic(c.panicVal)
	}
	return nil, c.err
}

func stubProgram(c *countingCompiler) *Program {
	cfg := DefaultConfig()
	return &Program{cfg: cfg, shaders: newShaderCache(c.compile)}
}

func TestShaderCacheGetMiss(t *testing.T) {
	c := newShaderCache((&countingCompiler{}).compile)
	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache reported a hit")
	}
}

func TestShaderCacheAddKeepsFirst(t *testing.T) {
	c := newShaderCache((&countingCompiler{}).compile)
	if !c.Add(nil, "a") {
		t.Fatal("first Add returned false")
	}
	if c.Add(nil, "a") {
		t.Error("duplicate Add returned true")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestShaderCacheLoadOrCompileOnce(t *testing.T) {
	cc := &countingCompiler{}
	c := newShaderCache(cc.compile)
	for i := 0; i < 10; i++ {
		if _, err := c.LoadOrCompile("x", "src"); err != nil {
			t.Fatalf("LoadOrCompile: %v", err)
		}
	}
	if cc.calls != 1 {
		t.Errorf("compile calls = %d, want 1", cc.calls)
	}
}

func TestShaderCacheCompileError(t *testing.T) {
	cc := &countingCompiler{err: errors.New("syntax error")}
	c := newShaderCache(cc.compile)
	_, err := c.LoadOrCompile("broken", "src")
	var gpuErr *GPUResourceError
	if !errors.As(err, &gpuErr) {
		t.Fatalf("err = %v, want *GPUResourceError", err)
	}
	if gpuErr.Resource != "shader broken" {
		t.Errorf("Resource = %q", gpuErr.Resource)
	}
	if c.Len() != 0 {
		t.Errorf("failed compile was cached")
	}
}

func TestShaderCacheRemembersCompileError(t *testing.T) {
	cc := &countingCompiler{err: errors.New("syntax error")}
	c := newShaderCache(cc.compile)
	c.LoadOrCompile("broken", "src")
	var errs []error
	for i := 0; i < 5; i++ {
		_, err := c.LoadOrCompile("broken", "src")
		errs = append(errs, err)
	}
	if cc.calls != 1 {
		t.Errorf("compile calls = %d, want 1", cc.calls)
	}
	for i, err := range errs {
		if !errors.Is(err, cc.err) {
			t.Errorf("call %d: err = %v, want the remembered compile error", i, err)
		}
	}
	if c.Failed("broken") == nil {
		t.Error("Failed() = nil after a compile error")
	}

	c.Forget("broken")
	if c.Failed("broken") != nil {
		t.Error("Failed() != nil after Forget")
	}
	cc.err = nil
	if _, err := c.LoadOrCompile("broken", "src"); err != nil {
		t.Fatalf("LoadOrCompile after Forget: %v", err)
	}
	if cc.calls != 2 {
		t.Errorf("compile calls = %d, want 2 after Forget", cc.calls)
	}
}

func TestShaderCacheDoesNotRememberPanics(t *testing.T) {
	cc := &countingCompiler{panicVal: "driver lost"}
	c := newShaderCache(cc.compile)
	c.LoadOrCompile("flaky", "src")
	c.LoadOrCompile("flaky", "src")
	if cc.calls != 2 {
		t.Errorf("compile calls = %d, want 2", cc.calls)
	}
	if c.Failed("flaky") != nil {
		t.Error("a recovered panic was remembered")
	}
}

func TestShaderCacheCompilePanic(t *testing.T) {
	cc := &countingCompiler{panicVal: "driver lost"}
	c := newShaderCache(cc.compile)
	_, err := c.LoadOrCompile("broken", "src")
	var gpuErr *GPUResourceError
	if !errors.As(err, &gpuErr) {
		t.Fatalf("err = %v, want *GPUResourceError", err)
	}
}

func TestShaderCacheNamesSorted(t *testing.T) {
	c := newShaderCache((&countingCompiler{}).compile)
	for _, n := range []string{"c", "a", "b"} {
		c.Add(nil, n)
	}
	if got := c.Names(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Names() = %v", got)
	}
}

// --- TryLoadShaders ---

func TestTryLoadShadersIdempotent(t *testing.T) {
	cc := &countingCompiler{}
	p := stubProgram(cc)
	s := &Sprite{}
	for i := 0; i < 5; i++ {
		if err := s.TryLoadShaders(p); err != nil {
			t.Fatalf("TryLoadShaders: %v", err)
		}
	}
	if cc.calls != 1 {
		t.Errorf("compile calls = %d, want 1", cc.calls)
	}
	if p.Shaders().Len() != 1 {
		t.Errorf("cache Len() = %d, want 1", p.Shaders().Len())
	}
	if _, ok := p.Shaders().Get(SpriteShaderName); !ok {
		t.Errorf("%s not cached", SpriteShaderName)
	}
}

func TestTryLoadShadersOneEntryPerVariant(t *testing.T) {
	cc := &countingCompiler{}
	p := stubProgram(cc)
	sprites := []*Sprite{{}, {}, {}}
	dl := NewDirectionalLight([3]float32{0, 0, 1}, [3]float32{1, 1, 1}, [3]float32{}, 1, 0, 0)
	pl := NewPointLight([3]float32{0, 0, 1}, [3]float32{1, 1, 1}, [3]float32{}, 1, 0, 0)

	for frame := 0; frame < 3; frame++ {
		for _, s := range sprites {
			if err := s.TryLoadShaders(p); err != nil {
				t.Fatal(err)
			}
		}
		for _, l := range []LightDrawable{dl, pl, dl} {
			if err := l.TryLoadShaders(p); err != nil {
				t.Fatal(err)
			}
		}
	}

	want := []string{DirectionalLightShaderName, PointLightShaderName, SpriteShaderName}
	if got := p.Shaders().Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if cc.calls != 3 {
		t.Errorf("compile calls = %d, want 3", cc.calls)
	}
}

func TestTryLoadShadersPropagatesError(t *testing.T) {
	cc := &countingCompiler{err: errors.New("bad")}
	p := stubProgram(cc)
	err := (&Sprite{}).TryLoadShaders(p)
	var gpuErr *GPUResourceError
	if !errors.As(err, &gpuErr) {
		t.Errorf("err = %v, want *GPUResourceError", err)
	}
}
