package lumen

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Logical shader names used by the built-in variants.
const (
	SpriteShaderName           = "sprite_shader"
	NormalShaderName           = "normal_shader"
	DirectionalLightShaderName = "directional_light_shader"
	PointLightShaderName       = "point_light_shader"
	CompositeShaderName        = "composite_shader"
)

// ShaderCache maps logical shader names to compiled programs. It lives as
// long as its Program and is only touched from the render thread, so it
// holds no lock.
//
// A compile error is remembered under its name: later LoadOrCompile calls
// return it without compiling again until Forget is called. Panics raised
// by the graphics driver are not remembered.
type ShaderCache struct {
	shaders map[string]*ebiten.Shader
	failed  map[string]error
	compile func(src []byte) (*ebiten.Shader, error)
}

// NewShaderCache creates an empty cache that compiles Kage source with
// ebiten.NewShader.
func NewShaderCache() *ShaderCache {
	return newShaderCache(ebiten.NewShader)
}

func newShaderCache(compile func([]byte) (*ebiten.Shader, error)) *ShaderCache {
	return &ShaderCache{
		shaders: make(map[string]*ebiten.Shader),
		failed:  make(map[string]error),
		compile: compile,
	}
}

// Get returns the program stored under name. A miss is not an error.
func (c *ShaderCache) Get(name string) (*ebiten.Shader, bool) {
	s, ok := c.shaders[name]
	return s, ok
}

// Add stores shader under name unless the name is already taken. It reports
// whether the shader was inserted; an existing entry is never replaced.
func (c *ShaderCache) Add(shader *ebiten.Shader, name string) bool {
	if _, ok := c.shaders[name]; ok {
		return false
	}
	c.shaders[name] = shader
	return true
}

// LoadOrCompile returns the cached program for name, compiling src and
// inserting it on a miss. If an earlier compile of name failed, that error
// is returned and src is not compiled.
func (c *ShaderCache) LoadOrCompile(name, src string) (*ebiten.Shader, error) {
	if s, ok := c.shaders[name]; ok {
		return s, nil
	}
	if err, ok := c.failed[name]; ok {
		return nil, err
	}
	var (
		s   *ebiten.Shader
		err error
	)
	if gerr := guard("shader "+name, func() {
		s, err = c.compile([]byte(src))
	}); gerr != nil {
		return nil, gerr
	}
	if err != nil {
		err = &GPUResourceError{Resource: "shader " + name, Err: err}
		c.failed[name] = err
		return nil, err
	}
	c.shaders[name] = s
	return s, nil
}

// Failed returns the remembered compile error for name, or nil.
func (c *ShaderCache) Failed(name string) error { return c.failed[name] }

// Forget drops a remembered compile error so the next LoadOrCompile of
// name compiles again.
func (c *ShaderCache) Forget(name string) { delete(c.failed, name) }

// ForgetAll drops every remembered compile error.
func (c *ShaderCache) ForgetAll() { clear(c.failed) }

// Len returns the number of cached programs.
func (c *ShaderCache) Len() int { return len(c.shaders) }

// Names returns the cached names in sorted order.
func (c *ShaderCache) Names() []string {
	names := make([]string, 0, len(c.shaders))
	for n := range c.shaders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Dispose deallocates every program and empties the cache.
func (c *ShaderCache) Dispose() {
	for name, s := range c.shaders {
		if s != nil {
			s.Deallocate()
		}
		delete(c.shaders, name)
	}
	clear(c.failed)
}
