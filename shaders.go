package lumen

// --- Kage shader sources ---
// All shaders use //kage:unit pixels. Ebitengine images hold premultiplied
// alpha; shaders un-premultiply albedo before lighting it.

// spriteShaderSrc copies one source texture through the sprite quad. The same
// program writes all four geometry targets.
const spriteShaderSrc = `//kage:unit pixels
package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	return imageSrc0At(srcPos)
}
`

// normalShaderSrc derives a normal map from a height field (image 0) using
// central differences, masked by the albedo (image 1). Normals are encoded
// as n*0.5+0.5 with +Y up.
const normalShaderSrc = `//kage:unit pixels
package main

var Strength float

func heightAt(p vec2) float {
	lo := imageSrc0Origin() + vec2(0.5)
	hi := imageSrc0Origin() + imageSrc0Size() - vec2(0.5)
	return imageSrc0At(clamp(p, lo, hi)).r
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	albedo := imageSrc1At(srcPos)
	if albedo.a == 0 {
		return vec4(0)
	}
	dx := heightAt(srcPos+vec2(1, 0)) - heightAt(srcPos-vec2(1, 0))
	dy := heightAt(srcPos-vec2(0, 1)) - heightAt(srcPos+vec2(0, 1))
	n := normalize(vec3(-dx*Strength, -dy*Strength, 1))
	return vec4(n*0.5+vec3(0.5), 1)
}
`

// directionalLightShaderSrc shades the geometry buffers (albedo, height,
// roughness, normal as images 0-3) with a directional light.
const directionalLightShaderSrc = `//kage:unit pixels
package main

var Direction vec3
var Diffuse vec3
var Ambient vec3
var Intensity float
var HeightBias float
var HeightFalloff float
var Headroom float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	albedo := imageSrc0At(srcPos)
	if albedo.a == 0 {
		return vec4(0)
	}
	base := albedo.rgb / albedo.a
	h := imageSrc1At(srcPos).r
	enc := imageSrc3At(srcPos)
	n := vec3(0, 0, 1)
	if enc.a > 0 {
		n = normalize(enc.rgb/enc.a*2 - vec3(1))
	}
	lambert := 0.0
	if length(Direction) > 0 {
		lambert = max(dot(n, normalize(Direction)), 0)
	}
	lit := clamp(lambert+HeightBias*h, 0, 1)
	atten := 1 / (1 + HeightFalloff*(1-h))
	light := Diffuse*(Intensity*lit*atten) + Ambient
	return vec4(base*light*albedo.a/Headroom, albedo.a)
}
`

// pointLightShaderSrc shades the geometry buffers with a point light placed
// in normalized device units; the fragment's z is its height.
const pointLightShaderSrc = `//kage:unit pixels
package main

var Position vec3
var Diffuse vec3
var Ambient vec3
var Intensity float
var Linear float
var Quadratic float
var Headroom float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	albedo := imageSrc0At(srcPos)
	if albedo.a == 0 {
		return vec4(0)
	}
	base := albedo.rgb / albedo.a
	h := imageSrc1At(srcPos).r
	enc := imageSrc3At(srcPos)
	n := vec3(0, 0, 1)
	if enc.a > 0 {
		n = normalize(enc.rgb/enc.a*2 - vec3(1))
	}
	p := dstPos.xy - imageDstOrigin()
	size := imageDstSize()
	frag := vec3(p.x/size.x*2-1, 1-p.y/size.y*2, h)
	toLight := Position - frag
	d := length(toLight)
	lambert := 1.0
	if d > 0 {
		lambert = max(dot(n, toLight/d), 0)
	}
	atten := 1 / (1 + Linear*d + Quadratic*d*d)
	light := Diffuse*(Intensity*lambert*atten) + Ambient
	return vec4(base*light*albedo.a/Headroom, albedo.a)
}
`

// compositeShaderSrc expands the accumulation target by Headroom, applies
// exposure and the tone map (Mode 0 clamp, 1 Reinhard), and blends the
// result over Background by the albedo alpha in image 1. Accumulated light
// is premultiplied by that alpha; the output is premultiplied too.
const compositeShaderSrc = `//kage:unit pixels
package main

var Headroom float
var Exposure float
var Mode float
var Background vec4

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	a := imageSrc1At(srcPos).a
	if a == 0 {
		return Background
	}
	rgb := imageSrc0At(srcPos).rgb / a * (Headroom * Exposure)
	if Mode > 0.5 {
		rgb = rgb / (vec3(1) + rgb)
	}
	rgb = clamp(rgb, vec3(0), vec3(1))
	return vec4(rgb*a, a) + Background*(1-a)
}
`
