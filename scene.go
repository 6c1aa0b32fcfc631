package deepsea

import (
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

const defaultCommandCap = 512

// Scene is the top-level object that owns the clock, the tweens, the bubble
// populations, the light rig, and the render buffers. It implements
// ebiten.Game; a host game can instead call Update, Draw, and Layout from its
// own loop, drawing the scene first so it sits behind everything else.
type Scene struct {
	cfg    Config
	rng    *rand.Rand
	clock  *Clock
	anim   *Animator
	camera *Camera
	phases *PhaseController

	// Render handles. Simulation state lives in the pools.
	root          *Node
	bubbleLayer   *Node
	fragmentLayer *Node
	beamLayer     *Node

	// Background is the current backdrop color. The opening tweens it from
	// black to the configured target.
	Background Color
	backdrop   *Material

	rise        *RisePool
	riseView    *poolView
	ambient     *AmbientPool
	ambientView *poolView
	fragments   *FragmentSet
	lights      *LightRig

	timeSource func() float64
	lastSample float64
	sampled    bool
	frames     uint64

	started bool
	torn    bool
	debug   bool

	// Render state
	commands []drawCommand
	beamCmds []*Node
	uniforms *shaderUniforms
	rectOp   ebiten.DrawRectShaderOptions

	// ShowFPS draws the FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	fps     fpsOverlay

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []capture
	testRunner      *TestRunner

	store EntityStore
}

var _ ebiten.Game = (*Scene)(nil)

// NewScene creates a scene from cfg. Nothing moves until Start (or the first
// Update) runs.
func NewScene(cfg Config) *Scene {
	s := &Scene{
		cfg:           cfg,
		rng:           NewRand(cfg.Seed),
		clock:         NewClock(),
		anim:          NewAnimator(),
		camera:        NewCamera(cfg.Camera, 1, 1),
		root:          NewContainer("root"),
		bubbleLayer:   NewContainer("bubbles"),
		fragmentLayer: NewContainer("fragments"),
		beamLayer:     NewContainer("beams"),
		Background:    ColorBlack,
		backdrop:      NewBackgroundMaterial(),
		commands:      make([]drawCommand, 0, defaultCommandCap),
		uniforms:      newShaderUniforms(),
		ScreenshotDir: "screenshots",
	}
	s.root.AddChild(s.bubbleLayer)
	s.root.AddChild(s.fragmentLayer)
	s.root.AddChild(s.beamLayer)
	s.fragments = NewFragmentSet(cfg.Fragments, s.rng, s.anim, s.fragmentLayer)
	s.phases = newPhaseController(s, cfg.Phases)

	s.timeSource = cfg.TimeSource
	if s.timeSource == nil {
		start := time.Now()
		s.timeSource = func() float64 { return time.Since(start).Seconds() }
	}
	return s
}

// Start mounts the scene: the opening choreography begins on the scene
// clock. No-op after the first call or after Teardown.
func (s *Scene) Start() {
	if s.started || s.torn {
		return
	}
	s.started = true
	s.sampled = false
	s.phases.Start()
}

// Update is the per-frame driver. It samples the time source once, or uses
// the fixed step when configured, and advances the scene by that delta.
func (s *Scene) Update() error {
	if s.torn {
		return nil
	}
	if !s.started {
		s.Start()
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.Tick(s.frameDelta())
	return nil
}

// frameDelta returns the seconds since the previous frame, capped at MaxStep.
func (s *Scene) frameDelta() float64 {
	if s.cfg.FixedStep > 0 {
		return s.cfg.FixedStep
	}
	now := s.timeSource()
	if !s.sampled {
		s.sampled = true
		s.lastSample = now
		return 0
	}
	dt := now - s.lastSample
	s.lastSample = now
	if dt < 0 {
		return 0
	}
	if s.cfg.MaxStep > 0 && dt > s.cfg.MaxStep {
		return s.cfg.MaxStep
	}
	return dt
}

// Tick advances the scene by dt seconds: deferred callbacks, tweens, both
// pools, fragments, and beams, then copies the result into render handles.
// Bubble motion is per tick, so every call moves bubbles even when dt is 0.
func (s *Scene) Tick(dt float64) {
	if s.torn || !s.started {
		return
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.clock.Advance(dt)
	s.anim.Update(float32(dt))
	if s.torn {
		// A callback tore the scene down.
		return
	}

	now := s.clock.Now()
	s.rise.Update(now)
	s.ambient.Update(now)
	s.fragments.Update(now)

	vp := s.camera.Viewport
	s.lights.Update(now, int(vp.Width), int(vp.Height), s.camera.PixelRatio)

	s.backdrop.SetTime(now)
	if s.rise != nil {
		s.riseView.sync(s.rise.bubbles, s.rise.Fade, now)
	}
	if s.ambient != nil {
		s.ambientView.sync(s.ambient.bubbles, 1, now)
	}
	s.fps.update(dt)
	s.frames++

	if s.debug {
		s.debugTick(time.Since(t0))
	}
}

// Layout reports the surface size in device pixels so the drawing density
// matches the display, and resizes the camera when it changes.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := deviceScale()
	w := int(float64(outsideWidth) * scale)
	h := int(float64(outsideHeight) * scale)
	if w != int(s.camera.Viewport.Width) || h != int(s.camera.Viewport.Height) || scale != s.camera.PixelRatio {
		s.Resize(w, h, scale)
	}
	return w, h
}

// Resize updates projection and surface dimensions. Bubble state is not
// touched.
func (s *Scene) Resize(w, h int, pixelRatio float64) {
	if s.torn {
		return
	}
	s.camera.Resize(w, h, pixelRatio)
}

// deviceScale returns the device pixel ratio of the current monitor.
func deviceScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		if f := m.DeviceScaleFactor(); f > 0 {
			return f
		}
	}
	return 1
}

// Teardown stops the scene: later Update, Tick, and Draw calls do nothing,
// pending timers and tweens are discarded without running their callbacks,
// and every render handle and generated image is released. Safe to call
// more than once.
func (s *Scene) Teardown() {
	if s.torn {
		return
	}
	s.torn = true
	s.clock.Reset()
	s.anim.KillAll()
	s.ambient.stop()
	s.fragments.Clear()
	s.lights.Dispose()
	s.root.Dispose()
	s.fps.dispose()
	s.commands = nil
	s.beamCmds = nil
	s.screenshotQueue = nil
	s.debugf("teardown after %d frames", s.frames)
	s.emit(SceneEvent{Type: EventTeardown})
}

// --- Population factories used by the phase controller ---

func (s *Scene) createRisePool() {
	if s.rise != nil {
		return
	}
	s.rise = NewRisePool(s.cfg.Rise, s.rng)
	s.riseView = newPoolView(s.bubbleLayer, "rise", s.rise.bubbles)
}

func (s *Scene) createAmbientPool() {
	if s.ambient != nil {
		return
	}
	s.ambient = NewAmbientPool(s.cfg.Ambient, s.cfg.Burst, s.rng, s.anim, s.fragments)
	s.ambient.OnBurst = func(i int, pos mgl64.Vec3, fragments int) {
		s.emit(SceneEvent{Type: EventBurst, Index: i, Position: pos, Fragments: fragments})
	}
	s.ambientView = newPoolView(s.bubbleLayer, "ambient", s.ambient.bubbles)
}

func (s *Scene) createLightRig() {
	if s.lights != nil {
		return
	}
	s.lights = NewLightRig(s.cfg.Beams, s.rng, s.beamLayer)
	s.anim.Add(TweenValue(&s.lights.Reveal, 1, float32(s.cfg.Beams.FadeIn), ease.InOutQuad))
}

// --- Accessors ---

// Root returns the scene's root render node.
func (s *Scene) Root() *Node { return s.root }

// Config returns the configuration the scene was built with.
func (s *Scene) Config() Config { return s.cfg }

// Clock returns the scene's animation clock.
func (s *Scene) Clock() *Clock { return s.clock }

// Animator returns the scene's tween set.
func (s *Scene) Animator() *Animator { return s.anim }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Phases returns the opening choreography controller.
func (s *Scene) Phases() *PhaseController { return s.phases }

// RisePool returns the fast-rise pool, or nil before Start.
func (s *Scene) RisePool() *RisePool { return s.rise }

// AmbientPool returns the ambient pool, or nil until the background
// transition completes.
func (s *Scene) AmbientPool() *AmbientPool { return s.ambient }

// Fragments returns the scene's fragment set.
func (s *Scene) Fragments() *FragmentSet { return s.fragments }

// Lights returns the light-beam overlay, or nil until it is revealed.
func (s *Scene) Lights() *LightRig { return s.lights }

// Frames returns the number of ticks run.
func (s *Scene) Frames() uint64 { return s.frames }

// Started reports whether Start has run.
func (s *Scene) Started() bool { return s.started }

// TornDown reports whether Teardown has run.
func (s *Scene) TornDown() bool { return s.torn }

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, child count warnings are printed, and per-frame timing and
// phase events are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
