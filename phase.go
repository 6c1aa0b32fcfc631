package deepsea

import "github.com/tanema/gween/ease"

// Phase names a stage of the opening choreography. It is derived from the
// transition flags for diagnostics and never drives behavior.
type Phase uint8

const (
	PhaseIdle       Phase = iota // not started
	PhaseInitial                 // fast burst rising over black
	PhaseTransition              // burst fading, ambient pool arriving
	PhaseAmbient                 // only ambient bubbles remain
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInitial:
		return "initial"
	case PhaseTransition:
		return "transition"
	case PhaseAmbient:
		return "ambient"
	default:
		return "unknown"
	}
}

// PhaseController runs the opening as independent, fire-once deferred
// actions on the scene clock. There is no ordering between them beyond what
// their timings imply; each one has its own guard flag.
type PhaseController struct {
	scene *Scene
	cfg   PhaseConfig

	started        bool
	riseFaded      bool
	ambientCreated bool
	lightsCreated  bool

	// light is the overlay reveal level.
	light float64

	bgStart   float64
	bgTween   *TweenGroup
	fadeTimer *Timer
	fadeTween *TweenGroup
}

func newPhaseController(s *Scene, cfg PhaseConfig) *PhaseController {
	return &PhaseController{scene: s, cfg: cfg}
}

// Start paints the background black, releases the fast burst, and schedules
// the three transitions. No-op after the first call.
func (pc *PhaseController) Start() {
	s := pc.scene
	if pc.started || s.torn {
		return
	}
	pc.started = true
	s.Background = ColorBlack
	s.createRisePool()

	pc.bgStart = s.clock.Now()
	pc.bgTween = s.anim.Add(TweenColor(&s.Background, pc.cfg.Background, float32(pc.cfg.BackgroundDuration), ease.InOutCubic).
		Then(pc.onBackgroundDone))
	pc.fadeTimer = s.clock.After(pc.cfg.FadeOutDelay, func() { pc.FadeOutRise() })
	s.anim.Add(TweenValue(&pc.light, 1, float32(pc.cfg.LightDuration), ease.Linear).
		Then(pc.onLightDone))
	s.debugf("phase: start, %d rise bubbles, fade-out due at t=%.2f", s.rise.Len(), pc.fadeTimer.At())
	s.emit(SceneEvent{Type: EventStart})
}

// FadeOutRise shrinks the fast-rise pool to nothing and then hides it. It
// fires at most once per scene and reports whether this call started it.
func (pc *PhaseController) FadeOutRise() bool {
	s := pc.scene
	if pc.riseFaded || s.torn || s.rise == nil {
		return false
	}
	pc.riseFaded = true
	pc.fadeTimer.Stop()

	rise := s.rise
	pc.fadeTween = s.anim.Add(TweenValue(&rise.Fade, 0, float32(pc.cfg.FadeOutDuration), ease.Linear).
		Then(rise.Hide))
	s.debugf("phase: rise fade-out at t=%.2f", s.clock.Now())
	s.emit(SceneEvent{Type: EventRiseFadeOut})
	return true
}

func (pc *PhaseController) onBackgroundDone() {
	if pc.ambientCreated || pc.scene.torn {
		return
	}
	pc.ambientCreated = true
	pc.scene.createAmbientPool()
	pc.scene.debugf("phase: ambient pool at t=%.2f", pc.scene.clock.Now())
	pc.scene.emit(SceneEvent{Type: EventAmbientCreated})
}

func (pc *PhaseController) onLightDone() {
	if pc.lightsCreated || pc.scene.torn {
		return
	}
	pc.lightsCreated = true
	pc.scene.createLightRig()
	pc.scene.debugf("phase: light beams at t=%.2f", pc.scene.clock.Now())
	pc.scene.emit(SceneEvent{Type: EventLightsCreated})
}

// BackgroundProgress returns the elapsed fraction of the background color
// tween in [0, 1].
func (pc *PhaseController) BackgroundProgress() float64 {
	switch {
	case pc.bgTween == nil:
		return 0
	case pc.ambientCreated || pc.cfg.BackgroundDuration <= 0:
		return 1
	}
	return clamp01((pc.scene.clock.Now() - pc.bgStart) / pc.cfg.BackgroundDuration)
}

// LightLevel returns the overlay reveal tween value in [0, 1].
func (pc *PhaseController) LightLevel() float64 {
	return pc.light
}

// RiseFaded reports whether the fade-out transition has fired.
func (pc *PhaseController) RiseFaded() bool {
	return pc.riseFaded
}

// Phase derives the current stage from the transition flags.
func (pc *PhaseController) Phase() Phase {
	switch {
	case !pc.started:
		return PhaseIdle
	case pc.riseFaded && pc.ambientCreated && pc.fadeTween != nil && pc.fadeTween.Done:
		return PhaseAmbient
	case pc.riseFaded || pc.ambientCreated:
		return PhaseTransition
	default:
		return PhaseInitial
	}
}
