package lumen

import "github.com/hajimehoshi/ebiten/v2"

// synthesizeNormals derives a normal map from a height field, masked by the
// albedo's alpha. The result always has the albedo's size; a height field of
// another size is resampled (nearest) first through a target borrowed from pool.
//
// The normal map is computed once. If the height or albedo pixels change
// afterwards it goes stale until the owner is rebuilt.
func synthesizeNormals(cache *ShaderCache, pool *renderTargetPool, heightTex, albedoTex *Texture, strength float32) (*Texture, error) {
	shader, err := cache.LoadOrCompile(NormalShaderName, normalShaderSrc)
	if err != nil {
		return nil, err
	}

	w, h := albedoTex.Width(), albedoTex.Height()
	normal, err := newEmptyTexture("normal", w, h, FormatRGBA8)
	if err != nil {
		return nil, err
	}

	heightImg := heightTex.Image()
	var scratch *ebiten.Image
	if heightTex.Width() != w || heightTex.Height() != h {
		scratch, err = pool.Acquire(w, h)
		if err != nil {
			normal.Dispose()
			return nil, err
		}
		defer pool.Release(scratch)

		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(w)/float64(heightTex.Width()), float64(h)/float64(heightTex.Height()))
		op.Filter = ebiten.FilterNearest
		op.Blend = ebiten.BlendCopy
		scratch.DrawImage(heightImg, &op)
		heightImg = scratch
	}

	var op ebiten.DrawRectShaderOptions
	op.Images[0] = heightImg
	op.Images[1] = albedoTex.Image()
	op.Uniforms = map[string]any{"Strength": strength}
	op.Blend = ebiten.BlendCopy
	if err := guard("normal synthesis", func() {
		normal.Image().DrawRectShader(w, h, shader, &op)
	}); err != nil {
		normal.Dispose()
		return nil, err
	}

	return normal, nil
}
