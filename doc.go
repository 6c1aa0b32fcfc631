// Package deepsea renders an animated deep-sea bubble background for
// [Ebitengine].
//
// A scene opens with a dense column of fast bubbles rising out of black
// water. Over the first seconds the water blends to a deep blue, the fast
// column shrinks away, a small population of slow ambient bubbles fades in,
// and soft light shafts sway down from the surface. Ambient bubbles age,
// burst at random into a spray of fragments, and are reset at the bottom,
// so the pool never grows.
//
// # Quick start
//
// The simplest way to show the scene is [Run], which creates a window and
// game loop for you:
//
//	scene := deepsea.NewScene(deepsea.DefaultConfig())
//	if err := deepsea.Run(scene, deepsea.RunConfig{Title: "Deep Sea"}); err != nil {
//		log.Fatal(err)
//	}
//
// To use it as the backdrop of an existing game, call [Scene.Update],
// [Scene.Draw], and [Scene.Layout] from your own [ebiten.Game], drawing the
// scene before anything else, and call [Scene.Teardown] when it is no longer
// needed.
//
// # Time
//
// All choreography runs on the scene's [Clock] and [Animator]. Update
// samples [Config.TimeSource] once per frame and advances both by the
// elapsed time. Bubble motion is applied once per tick rather than scaled by
// the delta, matching the frame-locked feel of the effect.
//
// Set [Config.FixedStep] and [Config.Seed] for reproducible runs; tests and
// the [TestRunner] rely on both.
//
// # Configuration
//
// [DefaultConfig] holds the tuned values. [LoadConfig] overlays a TOML file
// on top of them and rejects unknown keys:
//
//	seed = 42
//
//	[ambient]
//	count = 40
//	lifespan = { min = 8, max = 20 }
//
//	[phases]
//	background = "#00050d"
//
// # Debugging
//
// [Scene.SetDebugMode] enables runtime checks on the render node tree and
// logs phase transitions and frame timings to stderr. [Scene.Screenshot]
// queues a PNG capture of the next rendered frame.
//
// [Ebitengine]: https://ebitengine.org
package deepsea
