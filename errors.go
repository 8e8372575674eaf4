package lumen

import (
	"errors"
	"fmt"
)

var (
	// ErrShaderNotLoaded is returned by Draw when the variant's shader has not
	// been put in the program's ShaderCache by TryLoadShaders.
	ErrShaderNotLoaded = errors.New("lumen: shader not loaded")

	// ErrDimensionMismatch is returned when a render target does not match the
	// program's output dimensions.
	ErrDimensionMismatch = errors.New("lumen: render target dimensions do not match program")

	// ErrTooManyFailures is reported once consecutive frame failures exceed
	// Config.MaxFrameFailures. The run loop treats it as fatal.
	ErrTooManyFailures = errors.New("lumen: too many consecutive frame failures")

	// ErrLightDisabled is reported for a light skipped because it failed
	// Config.MaxFrameFailures frames in a row. See Program.ResetLightFailures.
	ErrLightDisabled = errors.New("lumen: light disabled after repeated failures")
)

// AssetError reports an image that could not be read or decoded.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("lumen: asset %q: %v", e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// GPUResourceError reports a failed texture, render target or shader
// operation. Resource names the object, e.g. "shader sprite_shader" or
// "render target albedo".
type GPUResourceError struct {
	Resource string
	Err      error
}

func (e *GPUResourceError) Error() string {
	return fmt.Sprintf("lumen: %s: %v", e.Resource, e.Err)
}

func (e *GPUResourceError) Unwrap() error { return e.Err }

// guard runs fn and converts a panic raised by Ebitengine into a
// *GPUResourceError naming resource.
func guard(resource string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = &GPUResourceError{Resource: resource, Err: e}
				return
			}
			err = &GPUResourceError{Resource: resource, Err: fmt.Errorf("%v", r)}
		}
	}()
	fn()
	return nil
}
