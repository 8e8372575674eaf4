// Package lumen is a deferred 2D lighting renderer for pixel art, built on
// [Ebitengine].
//
// Sprites are described by an albedo image, a height field and a roughness
// image. When a sprite is built, lumen bakes a normal map from its height
// field on the GPU. Every frame the sprites are drawn into four geometry
// targets (albedo, height, roughness, normal) and each light then shades
// those targets into an additive accumulation target, which is tone mapped
// and blitted to the screen.
//
// # Quick start
//
//	program, err := lumen.NewProgram(lumen.Config{Width: 128, Height: 128})
//	if err != nil {
//		log.Fatal(err)
//	}
//	sprite, err := lumen.NewSpriteFromFiles(program,
//		"bricks.png", "bricks_height.png", "bricks_roughness.png",
//		lumen.NewTransform([3]float32{0, 0, 0}))
//	if err != nil {
//		log.Fatal(err)
//	}
//	sun := lumen.NewDirectionalLight(
//		[3]float32{0, 0, 1}, [3]float32{1, 1, 1}, [3]float32{0.1, 0.1, 0.1},
//		2, 0.001, 0.01)
//
//	lumen.Run(program, func(p *lumen.Program, dt float32) (lumen.FrameInput, error) {
//		return lumen.FrameInput{
//			Lights:    []lumen.LightDrawable{sun},
//			Drawables: []lumen.Drawable{sprite},
//		}, nil
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Program.RenderFrame] (or [Program.DrawAll]) from Draw.
//
// # Coordinates
//
// Positions are in normalized device units: the output spans [-1, 1] on both
// axes with +Y up. A sprite's quad spans ±(spriteW/outputW, spriteH/outputH),
// so sprites keep their source pixel size at the program's resolution.
//
// # Threading
//
// lumen is single-threaded. All calls must come from the Ebitengine game
// loop (or from the goroutine that calls RunGame before it starts).
//
// [Ebitengine]: https://ebitengine.org
package lumen
